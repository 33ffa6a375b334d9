// Package server exposes the enumeration and layout pipeline over HTTP.
//
// The API is a thin shell: every endpoint parses parameters, calls the
// pipeline runner or the document store, and serializes the result. The count
// endpoint is guaranteed cheap (closed-form), so clients can probe a
// selection's size before asking for the arrangements themselves.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cardgrid/cardgrid/pkg/pipeline"
	"github.com/cardgrid/cardgrid/pkg/store"
)

// Server wires the pipeline runner and document store into an HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	maxArr int
}

// New creates a server. A nil store disables the /layouts endpoints, a zero
// maxArrangements falls back to the pipeline default.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger, maxArrangements int) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if maxArrangements == 0 {
		maxArrangements = pipeline.DefaultMaxArrangements
	}
	return &Server{
		runner: runner,
		store:  st,
		logger: logger,
		maxArr: maxArrangements,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/count", s.handleCount)
		r.Get("/formula", s.handleFormula)
		r.Get("/arrangements", s.handleArrangements)
		r.Get("/layout/grid", s.handleLayoutGrid)
		r.Get("/comparison", s.handleComparison)

		if s.store != nil {
			r.Route("/layouts", func(r chi.Router) {
				r.Post("/", s.handleSaveLayout)
				r.Get("/", s.handleListLayouts)
				r.Get("/{id}", s.handleGetLayout)
				r.Delete("/{id}", s.handleDeleteLayout)
			})
		}
	})

	return r
}

// ListenAndServe serves the API until the context is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
