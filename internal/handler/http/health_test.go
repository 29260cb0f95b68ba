package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdd-backend/internal/infra/adapter/persistence/memory"
	"mdd-backend/internal/resilience/circuitbreaker"
)

type failingStore struct{ err error }

func (f failingStore) Ping(context.Context) error { return f.err }

func getHealth(t *testing.T, h http.Handler) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestHealthHandler_MemoryStore(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h := &HealthHandler{Store: memory.New(), Driver: "memory", Version: "1.2.3", Now: func() time.Time { return fixed }}

	rec, resp := getHealth(t, h)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Equal(t, "2026-03-01T12:00:00Z", resp.Timestamp)
	assert.Equal(t, "healthy", resp.Checks["store"].Status)
	assert.Equal(t, "memory", resp.Checks["store"].Details["driver"])
}

func TestHealthHandler_Unhealthy(t *testing.T) {
	tests := []struct {
		name  string
		store Pinger
	}{
		{"not configured", nil},
		{"ping fails", failingStore{err: errors.New("connection refused")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := getHealth(t, &HealthHandler{Store: tt.store})
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
			assert.Equal(t, "unhealthy", resp.Status)
			assert.Equal(t, "unhealthy", resp.Checks["store"].Status)
		})
	}
}

func newBreakerDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *circuitbreaker.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock, circuitbreaker.NewDB(db)
}

func TestHealthHandler_PostgresPool(t *testing.T) {
	db, mock, store := newBreakerDB(t)
	db.SetMaxOpenConns(10)
	mock.ExpectPing()

	rec, resp := getHealth(t, &HealthHandler{Store: store, Driver: "postgres"})

	assert.Equal(t, http.StatusOK, rec.Code)
	check := resp.Checks["store"]
	assert.Equal(t, "healthy", check.Status)
	assert.Equal(t, "closed", check.Details["circuit_breaker"])
	assert.EqualValues(t, 10, check.Details["max_open_connections"])
	assert.Contains(t, check.Details, "utilization_percent")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthHandler_UnboundedPoolIsDegraded(t *testing.T) {
	_, mock, store := newBreakerDB(t)
	mock.ExpectPing()

	rec, resp := getHealth(t, &HealthHandler{Store: store, Driver: "postgres"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "degraded", resp.Checks["store"].Status)
}

func TestHealthHandler_PingErrorIsSanitized(t *testing.T) {
	_, mock, store := newBreakerDB(t)
	mock.ExpectPing().WillReturnError(errors.New("dial postgres://admin:hunter2@db:5432 failed"))

	rec, resp := getHealth(t, &HealthHandler{Store: store, Driver: "postgres"})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, resp.Checks["store"].Message, "hunter2")
}

func TestReadyHandler(t *testing.T) {
	tests := []struct {
		name     string
		store    Pinger
		wantCode int
		wantBody string
	}{
		{"ready", memory.New(), http.StatusOK, "ready"},
		{"not configured", nil, http.StatusServiceUnavailable, "store not configured\n"},
		{"ping fails", failingStore{err: errors.New("down")}, http.StatusServiceUnavailable, "store not ready\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			(&ReadyHandler{Store: tt.store}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestLiveHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	(&LiveHandler{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alive", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
}
