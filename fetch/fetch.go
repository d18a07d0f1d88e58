// Package fetch loads site resources (roster, biographies, catalog) from a
// local directory or an HTTP origin.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrResourceUnavailable matches every error returned by a Source.
var ErrResourceUnavailable = errors.New("resource unavailable")

// Source retrieves a resource by its slash-separated path relative to the
// site root, e.g. "people/people.txt".
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// ResourceError describes a failed fetch.
type ResourceError struct {
	Path string
	// Status is the HTTP status code, or 0 when no response was received.
	Status int
	Err    error
}

func (e *ResourceError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("fetching %s: HTTP %d: %v", e.Path, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("fetching %s: HTTP %d", e.Path, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("fetching %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("fetching %s: %v", e.Path, ErrResourceUnavailable)
	}
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrResourceUnavailable.
func (e *ResourceError) Is(target error) bool {
	return target == ErrResourceUnavailable
}

// New returns a Source for location: an http(s) URL selects HTTP, anything
// else is treated as a local directory.
func New(location string, opts ...HTTPOption) Source {
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return NewHTTP(location, opts...)
	}
	return NewDir(location)
}
