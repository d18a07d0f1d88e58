// Package server serves the lab pages and their JSON API over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/labsite/labsite/format"
	"github.com/labsite/labsite/site"
)

// Options configures a Server.
type Options struct {
	// ResourceDir is served under /resources/ when the resources are local.
	ResourceDir string
	// AssetBase is the prefix for photo and icon URLs in rendered pages.
	// Defaults to "/resources/".
	AssetBase string
}

// Server renders pages from freshly loaded data on every request.
type Server struct {
	loader *site.Loader
	opts   Options
}

// New creates a Server.
func New(loader *site.Loader, opts Options) *Server {
	if opts.AssetBase == "" {
		opts.AssetBase = "/resources/"
	}
	return &Server{loader: loader, opts: opts}
}

// Routes configures all routes and returns the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/people", http.StatusFound)
	})
	r.Get("/people", s.people)
	r.Get("/publications", s.publications)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/people", s.apiPeople)
		r.Get("/publications", s.apiPublications)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	// Static resources
	if s.opts.ResourceDir != "" {
		fileServer := http.FileServer(http.Dir(s.opts.ResourceDir))
		r.Handle("/resources/*", http.StripPrefix("/resources", fileServer))
	}

	return r
}

func (s *Server) renderOptions() *format.RenderOptions {
	opts := format.NewRenderOptions()
	opts.AssetBase = s.opts.AssetBase
	opts.Interactive = true
	opts.PeopleHref = "/people"
	opts.PublicationsHref = "/publications"
	return opts
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout time.Duration) error {
	srv := &http.Server{
		Addr:        addr,
		Handler:     s.Routes(),
		ReadTimeout: readTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// requestLogger logs each request through slog once it completes.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
