// Package server exposes the extraction pipeline over HTTP. One POST
// endpoint does all the work; the envelope is the same shape for success
// and failure so callers can branch on status alone.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"catalog-extract/internal/config"
	"catalog-extract/internal/extract"
	"catalog-extract/internal/fetch"
	"catalog-extract/internal/logger"
	"catalog-extract/internal/model"
	"catalog-extract/internal/tabular"
)

// Server wires the fetcher and the extraction pipeline behind a chi router.
type Server struct {
	cfg     *config.Config
	fetcher *fetch.Fetcher
	http    *http.Server
}

// New creates a Server from the loaded configuration.
func New(cfg *config.Config) *Server {
	s := &Server{
		cfg:     cfg,
		fetcher: fetch.New(time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(logRequests)

	r.Get("/", s.handleRoot)
	r.Post("/extract", s.handleExtract)

	s.http = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}
	return s
}

// ListenAndServe starts the HTTP listener (blocking).
func (s *Server) ListenAndServe() error {
	logger.Info("Listening on %s", s.cfg.Server.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, model.APIResponse{
		StatusCode: http.StatusOK,
		Status:     true,
		Message:    "catalog-extract is running",
	})
}

// handleExtract is the whole service: decode the request, download the
// source, parse it, run the pipeline, return the record set.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req model.ExtractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, model.APIResponse{
			StatusCode: http.StatusBadRequest,
			Status:     false,
			Message:    "invalid request body: " + err.Error(),
		})
		return
	}

	sourceURL := req.SourceURL()
	if sourceURL == "" {
		writeEnvelope(w, model.APIResponse{
			StatusCode: http.StatusBadRequest,
			Status:     false,
			Message:    "no file or url provided",
		})
		return
	}

	spec := req.ToHeaderSpec()
	if len(spec) == 0 {
		writeEnvelope(w, model.APIResponse{
			StatusCode: http.StatusBadRequest,
			Status:     false,
			Message:    "no headers provided",
		})
		return
	}

	logger.Info("Extract request for %s (%d headers)", sourceURL, len(spec))

	body, err := s.fetcher.Get(r.Context(), sourceURL)
	if err != nil {
		logger.Error("Fetch failed: %v", err)
		writeEnvelope(w, model.APIResponse{
			StatusCode: http.StatusInternalServerError,
			Status:     false,
			Message:    err.Error(),
		})
		return
	}

	raw, err := tabular.Parse(sourceURL, body)
	if err != nil {
		logger.Error("Parse failed: %v", err)
		writeEnvelope(w, model.APIResponse{
			StatusCode: http.StatusInternalServerError,
			Status:     false,
			Message:    err.Error(),
		})
		return
	}

	records := extract.Extract(raw, spec, s.cfg.ExtractOptions(sourceURL))
	if req.ExcludePhoto {
		blankPhotos(records)
	}

	writeEnvelope(w, model.APIResponse{
		StatusCode: http.StatusOK,
		Status:     true,
		Data:       records,
	})
}

// blankPhotos clears the Photo field. Photo cells never survive a CSV
// export anyway, so callers can ask for them to be dropped outright.
func blankPhotos(records []model.Record) {
	for _, rec := range records {
		if _, ok := rec["Photo"]; ok {
			rec["Photo"] = ""
		}
	}
}

func writeEnvelope(w http.ResponseWriter, resp model.APIResponse) {
	writeJSON(w, resp.StatusCode, resp)
}

// logRequests writes one line per request through the shared logger, so API
// traffic lands in the same log file as the extraction chatter.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.Info("%s %s -> %d (%s)", r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Millisecond))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response: %v", err)
	}
}
