// Package http assembles the MDD HTTP API: the router, the cross-cutting
// middleware, request metrics and the health endpoints.
package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"mdd-backend/internal/handler/http/respond"
)

// Pinger is the store check used by the health endpoints. The memory and
// mongo stores and the circuit breaker wrapping the postgres pool satisfy it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// poolStats is implemented by stores backed by database/sql.
type poolStats interface {
	Stats() sql.DBStats
}

// breakerState is implemented by stores guarded by a circuit breaker.
type breakerState interface {
	State() gobreaker.State
}

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status" example:"healthy"`
	Timestamp string                 `json:"timestamp" example:"2026-01-01T00:00:00Z"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version" example:"dev"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

// HealthHandler reports store connectivity, and pool statistics and breaker
// state when the store exposes them.
type HealthHandler struct {
	Store   Pinger
	Driver  string
	Version string
	// Now defaults to time.Now.
	Now func() time.Time
}

// ServeHTTP returns 200 when the store answers and 503 otherwise. A degraded
// store is still reported as healthy overall.
//
// @Summary      Health check
// @Description  Reports store connectivity and connection pool statistics
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	store := h.checkStore(ctx)
	status, code := statusHealthy, http.StatusOK
	if store.Status == statusUnhealthy {
		status, code = statusUnhealthy, http.StatusServiceUnavailable
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: now().UTC().Format(time.RFC3339),
		Checks:    map[string]CheckStatus{"store": store},
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkStore(ctx context.Context) CheckStatus {
	if h.Store == nil {
		return CheckStatus{Status: statusUnhealthy, Message: "not configured"}
	}

	details := map[string]any{"driver": h.Driver}
	if b, ok := h.Store.(breakerState); ok {
		details["circuit_breaker"] = b.State().String()
	}
	if err := h.Store.Ping(ctx); err != nil {
		slog.Default().Warn("health check failed",
			slog.String("driver", h.Driver),
			slog.Any("error", err))
		return CheckStatus{Status: statusUnhealthy, Message: respond.SanitizeError(err), Details: details}
	}

	p, ok := h.Store.(poolStats)
	if !ok {
		return CheckStatus{Status: statusHealthy, Details: details}
	}
	stats := p.Stats()
	details["max_open_connections"] = stats.MaxOpenConnections
	details["open_connections"] = stats.OpenConnections
	details["in_use"] = stats.InUse
	details["idle"] = stats.Idle
	details["wait_count"] = stats.WaitCount
	details["wait_duration_ms"] = stats.WaitDuration.Milliseconds()

	// MaxOpenConnections is 0 when the pool is unbounded.
	if stats.MaxOpenConnections == 0 {
		return CheckStatus{Status: statusDegraded, Message: "connection pool max connections not configured", Details: details}
	}
	utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	details["utilization_percent"] = utilization
	if utilization >= 80.0 {
		return CheckStatus{Status: statusDegraded, Message: "connection pool utilization above 80%", Details: details}
	}
	return CheckStatus{Status: statusHealthy, Details: details}
}

// ReadyHandler answers the readiness probe.
type ReadyHandler struct {
	Store Pinger
}

// ServeHTTP returns 200 "ready" once the store answers a ping within two seconds.
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      plain
// @Success      200  {string}  string  "ready"
// @Failure      503  {string}  string
// @Router       /ready [get]
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.Store == nil {
		http.Error(w, "store not configured", http.StatusServiceUnavailable)
		return
	}
	if err := h.Store.Ping(ctx); err != nil {
		http.Error(w, "store not ready", http.StatusServiceUnavailable)
		return
	}
	writeText(w, "ready")
}

// LiveHandler answers the liveness probe.
type LiveHandler struct{}

// ServeHTTP always returns 200 "alive".
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      plain
// @Success      200  {string}  string  "alive"
// @Router       /live [get]
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	writeText(w, "alive")
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Default().Warn("failed to write probe response", slog.Any("error", err))
	}
}
