package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTP serves resources from a web origin.
type HTTP struct {
	BaseURL string
	Client  *http.Client
}

// HTTPOption configures an HTTP source.
type HTTPOption func(*HTTP)

// WithTimeout sets the client timeout. Zero means no timeout.
func WithTimeout(d time.Duration) HTTPOption {
	return func(h *HTTP) {
		h.Client.Timeout = d
	}
}

// WithClient replaces the HTTP client.
func WithClient(c *http.Client) HTTPOption {
	return func(h *HTTP) {
		h.Client = c
	}
}

// NewHTTP returns a Source that issues GET requests below baseURL.
func NewHTTP(baseURL string, opts ...HTTPOption) *HTTP {
	h := &HTTP{
		BaseURL: strings.TrimRight(baseURL, "/") + "/",
		Client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Fetch downloads BaseURL+p. Any non-2xx response is an error.
func (h *HTTP) Fetch(ctx context.Context, p string) (_ []byte, err error) {
	url := h.BaseURL + strings.TrimLeft(p, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &ResourceError{Path: p, Err: fmt.Errorf("creating request: %w", err)}
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, &ResourceError{Path: p, Err: err}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = &ResourceError{Path: p, Err: cerr}
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ResourceError{Path: p, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ResourceError{Path: p, Status: resp.StatusCode, Err: fmt.Errorf("reading body: %w", err)}
	}
	return body, nil
}
