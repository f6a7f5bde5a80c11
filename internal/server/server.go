// Package server exposes the pipeline over HTTP.
//
// The server holds a configured pipeline runner and serves the graph model
// as JSON plus rendered artifacts. Query parameters override the render
// options per request; load and build options are fixed at startup.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mwielgus/postgraph/pkg/errors"
	"github.com/mwielgus/postgraph/pkg/pipeline"
)

// Server serves the post graph over HTTP.
type Server struct {
	runner *pipeline.Runner
	base   pipeline.Options
	logger *log.Logger
	addr   string
}

// Config holds server construction parameters.
type Config struct {
	Addr   string
	Opts   pipeline.Options // base pipeline options (source, layout, today override)
	Logger *log.Logger
}

// New creates a server around a configured runner.
func New(runner *pipeline.Runner, cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	addr := cfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	return &Server{
		runner: runner,
		base:   cfg.Opts,
		logger: logger,
		addr:   addr,
	}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/graph", s.handleGraph)
	r.Get("/graph.svg", s.handleArtifact(pipeline.FormatSVG, "image/svg+xml"))
	r.Get("/graph.png", s.handleArtifact(pipeline.FormatPNG, "image/png"))
	r.Get("/graph.dot", s.handleArtifact(pipeline.FormatDOT, "text/vnd.graphviz"))

	return r
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGraph serves the built model as JSON.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	opts := s.requestOptions(r)
	opts.Formats = []string{pipeline.FormatJSON}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Graph-Hash", result.GraphHash)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[pipeline.FormatJSON])
}

// handleArtifact serves one rendered format.
func (s *Server) handleArtifact(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := s.requestOptions(r)
		opts.Formats = []string{format}

		result, err := s.runner.Execute(r.Context(), opts)
		if err != nil {
			s.writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("X-Graph-Hash", result.GraphHash)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[format])
	}
}

// requestOptions derives per-request options from the base options and the
// query string. Only render concerns are overridable over HTTP.
func (s *Server) requestOptions(r *http.Request) pipeline.Options {
	opts := s.base
	q := r.URL.Query()
	if style := q.Get("style"); style != "" {
		opts.Style = style
	}
	if view := q.Get("view"); view != "" {
		opts.View = view
	}
	if q.Get("labels") == "false" {
		opts.NoLabels = true
	}
	if q.Get("refresh") == "true" {
		opts.Refresh = true
	}
	opts.Logger = s.logger
	return opts
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDate, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidStyle, errors.ErrCodeReservedTag, errors.ErrCodeDuplicateSlug,
		errors.ErrCodeInvalidFrontMatter:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}

	s.logger.Error("request failed", "code", code, "err", err)
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
