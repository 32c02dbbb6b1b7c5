// Package http provides the process-level HTTP surface of the API: health
// checks, Prometheus metrics and the request middleware chain. Story routes
// live in the story subpackage.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"story-api/internal/handler/http/respond"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status      string `json:"status" example:"OK"`
	Timestamp   string `json:"timestamp" example:"2026-01-02T10:00:00Z"`
	Environment string `json:"environment" example:"production"`
}

// HealthHandler reports process liveness. It never touches the store.
type HealthHandler struct {
	Environment string
	Now         func() time.Time
}

// ServeHTTP returns the liveness status.
// @Summary      Health check
// @Description  Liveness probe; does not check the store
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Router       /health [get]
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "OK",
		Timestamp:   now().UTC().Format(time.RFC3339),
		Environment: h.Environment,
	})
}

// Pinger is implemented by story repositories.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReadyResponse is the body of GET /ready.
type ReadyResponse struct {
	Status string `json:"status" example:"ready"`
	Store  string `json:"store" example:"postgres"`
}

// ReadyHandler reports whether the story store is reachable.
type ReadyHandler struct {
	Store     Pinger
	StoreName string
}

// ServeHTTP pings the store with a short timeout.
// @Summary      Readiness check
// @Description  Returns 503 when the story store cannot be reached
// @Tags         health
// @Produce      json
// @Success      200 {object} ReadyResponse
// @Failure      503 {object} ReadyResponse
// @Router       /ready [get]
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.Store == nil {
		writeJSON(w, http.StatusServiceUnavailable, ReadyResponse{Status: "not configured", Store: h.StoreName})
		return
	}
	if err := h.Store.Ping(ctx); err != nil {
		slog.Warn("readiness check failed",
			slog.String("store", h.StoreName),
			slog.Any("error", err))
		writeJSON(w, http.StatusServiceUnavailable, ReadyResponse{Status: "unavailable", Store: h.StoreName})
		return
	}
	writeJSON(w, http.StatusOK, ReadyResponse{Status: "ready", Store: h.StoreName})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, v)
}
