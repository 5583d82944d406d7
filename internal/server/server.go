// Package server exposes the analyzer over HTTP.
//
// Routes:
//
//	GET  /                          health message
//	GET  /api/repo/info?url=        repository or owner info (also POST {"url": ...})
//	GET  /api/repo/languages?url=   language byte counts
//	GET  /api/repo/technologies?url= detected technologies
//	GET  /api/repo/schema?url=      technology schema (format=json|dot|svg)
//
// Every route answers CORS preflights and tags responses with X-Request-ID.
// Errors are returned as {error, message, code}.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/stackscope/pkg/analyzer"
)

const (
	readHeaderTimeout = 10 * time.Second
	// writeTimeout covers an owner fan-out of several sequential GitHub calls.
	writeTimeout    = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Server routes API requests to an analyzer.Service.
type Server struct {
	svc    *analyzer.Service
	logger *log.Logger
	router chi.Router
}

// New creates a server. If logger is nil, log.Default() is used.
func New(svc *analyzer.Service, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{svc: svc, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody(http.StatusNotFound, "Not found", "No route for "+r.URL.Path, ""))
	})

	readOnly := []string{http.MethodGet}
	r.Handle("/", endpoint(readOnly, s.handleRoot))
	r.Route("/api/repo", func(r chi.Router) {
		r.Handle("/info", endpoint([]string{http.MethodGet, http.MethodPost}, s.handleInfo))
		r.Handle("/languages", endpoint(readOnly, s.handleLanguages))
		r.Handle("/technologies", endpoint(readOnly, s.handleTechnologies))
		r.Handle("/schema", endpoint(readOnly, s.handleSchema))
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
