package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdd-backend/internal/domain/entity"
	"mdd-backend/internal/handler/http/requestid"
	"mdd-backend/internal/handler/http/respond"
	"mdd-backend/internal/observability/logging"
	"mdd-backend/internal/observability/tracing"
)

func jsonLogger(buf *bytes.Buffer) *slog.Logger {
	return logging.New(buf, slog.LevelInfo, "json")
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestLogging(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantCode  int
		wantLevel string
		wantErr   string
	}{
		{
			name: "success",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte("created"))
			},
			wantCode:  http.StatusCreated,
			wantLevel: "INFO",
		},
		{
			name: "client error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				respond.Problem(w, r, entity.NotFound("topic not found"))
			},
			wantCode:  http.StatusNotFound,
			wantLevel: "INFO",
			wantErr:   "topic not found",
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				respond.Problem(w, r, errors.New("dial postgres://app:s3cret@db/mdd"))
			},
			wantCode:  http.StatusInternalServerError,
			wantLevel: "ERROR",
			wantErr:   "dial postgres://app:****@db/mdd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := requestid.Middleware(Logging(jsonLogger(&buf))(tt.handler))

			req := httptest.NewRequest(http.MethodPost, "/api/topics?x=1", nil)
			req.Header.Set(requestid.RequestIDHeader, "req-1")
			req.Header.Set("User-Agent", "test-agent/1.0")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			entry := lastEntry(t, &buf)
			assert.Equal(t, "request completed", entry["msg"])
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "req-1", entry["request_id"])
			assert.Equal(t, "/api/topics", entry["path"])
			assert.Equal(t, "x=1", entry["query"])
			assert.EqualValues(t, tt.wantCode, entry["status"])
			if tt.wantErr == "" {
				assert.NotContains(t, entry, "error")
			} else {
				assert.Equal(t, tt.wantErr, entry["error"])
			}
		})
	}
}

func TestLogging_SeesErrorThroughStackedWrappers(t *testing.T) {
	var buf bytes.Buffer
	failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.Problem(w, r, errors.New("store unavailable"))
	})
	h := Logging(jsonLogger(&buf))(tracing.Middleware(MetricsMiddleware(failing)))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/topics", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	entry := lastEntry(t, &buf)
	assert.Equal(t, "request completed", entry["msg"])
	assert.Equal(t, "store unavailable", entry["error"])
}

func TestLogging_StoresRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	h := requestid.Middleware(Logging(jsonLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context()).Info("inside handler")
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/topics", nil)
	req.Header.Set(requestid.RequestIDHeader, "req-2")
	h.ServeHTTP(httptest.NewRecorder(), req)

	first := strings.SplitN(buf.String(), "\n", 2)[0]
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(first), &entry))
	assert.Equal(t, "inside handler", entry["msg"])
	assert.Equal(t, "req-2", entry["request_id"])
}

func TestRecover(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"string", "something went wrong"},
		{"error", errors.New("test error")},
		{"number", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := Recover(jsonLogger(&buf))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				panic(tt.value)
			}))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/topics", nil))

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			var body respond.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, respond.InternalMessage, body.Message)

			entry := lastEntry(t, &buf)
			assert.Equal(t, "panic recovered", entry["msg"])
			assert.NotEmpty(t, entry["stack"])
		})
	}
}

func TestRecover_NoPanic(t *testing.T) {
	h := Recover(slog.Default())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRecover_RepanicsAbortHandler(t *testing.T) {
	h := Recover(slog.Default())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestLimitRequestBody(t *testing.T) {
	tests := []struct {
		name     string
		maxBytes int64
		bodySize int
		wantErr  bool
	}{
		{"within limit", 1024, 512, false},
		{"exactly at limit", 1024, 1024, false},
		{"exceeds limit", 100, 200, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var readErr error
			h := LimitRequestBody(tt.maxBytes)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				_, readErr = io.ReadAll(r.Body)
			}))

			body := strings.NewReader(strings.Repeat("a", tt.bodySize))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", body))

			if !tt.wantErr {
				assert.NoError(t, readErr)
				return
			}
			var maxErr *http.MaxBytesError
			assert.ErrorAs(t, readErr, &maxErr)
		})
	}
}

func TestTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
			w.WriteHeader(http.StatusOK)
		}
	})

	rec := httptest.NewRecorder()
	Timeout(10*time.Millisecond)(slow).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"message":"request timeout","status":503}`, rec.Body.String())
}

func TestTimeout_FastHandlerAndDisabled(t *testing.T) {
	fast := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	for _, d := range []time.Duration{0, time.Second} {
		rec := httptest.NewRecorder()
		Timeout(d)(fast).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusCreated, rec.Code)
	}
}
