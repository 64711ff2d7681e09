// Package handler provides HTTP request handlers for Keva.
//
// This package implements the read-only operational endpoints: health
// probes, Prometheus metrics, and a JSON stats summary.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/kevadb/keva-go/internal/store"
)

// ConnCounter reports connection counts from the serving layer.
type ConnCounter interface {
	ConnsActive() int64
	ConnsTotal() int64
}

// Handler is the main HTTP handler that routes requests to appropriate handlers.
type Handler struct {
	store   *store.Store
	conns   ConnCounter
	metrics http.Handler
	logger  *slog.Logger
	mux     *http.ServeMux
	started time.Time
}

// New creates a new Handler.
//
// conns and metrics may be nil; the /stats connection block then reads
// zero and /metrics answers 404.
func New(st *store.Store, conns ConnCounter, metrics http.Handler, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	h := &Handler{
		store:   st,
		conns:   conns,
		metrics: metrics,
		logger:  logger,
		mux:     http.NewServeMux(),
		started: time.Now(),
	}

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// registerRoutes registers all HTTP routes.
func (h *Handler) registerRoutes() {
	h.mux.HandleFunc("GET /health", h.handleHealth)
	h.mux.HandleFunc("GET /ready", h.handleReady)
	h.mux.HandleFunc("GET /stats", h.handleStats)

	if h.metrics != nil {
		h.mux.Handle("GET /metrics", h.metrics)
	}
}

// writeJSON writes a JSON response.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err, "path", r.URL.Path)
	}
}
