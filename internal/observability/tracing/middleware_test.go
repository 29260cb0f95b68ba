package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// installRecorder swaps the global provider for one recording into memory.
func installRecorder(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return exporter
}

func attrMap(attrs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(attrs))
	for _, a := range attrs {
		m[a.Key] = a.Value
	}
	return m
}

func TestMiddleware_CreatesSpan(t *testing.T) {
	exporter := installRecorder(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /test", spans[0].Name)

	attrs := attrMap(spans[0].Attributes)
	assert.Equal(t, "GET", attrs["http.method"].AsString())
	assert.Equal(t, "/test", attrs["http.path"].AsString())
	assert.Equal(t, int64(200), attrs["http.status_code"].AsInt64())
	assert.Len(t, rr.Header().Get(TraceIDHeader), 32)
}

func TestMiddleware_NamesSpanAfterRoute(t *testing.T) {
	exporter := installRecorder(t)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/articles/{id}", func(w http.ResponseWriter, r *http.Request) {})

	Middleware(mux).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/articles/42", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /api/articles/{id}", spans[0].Name)
	assert.Equal(t, "GET /api/articles/{id}", attrMap(spans[0].Attributes)["http.route"].AsString())
}

func TestMiddleware_PropagatesTraceContext(t *testing.T) {
	exporter := installRecorder(t)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator()) })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	rr := httptest.NewRecorder()
	Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rr, req)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spans[0].SpanContext.TraceID().String())
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", rr.Header().Get(TraceIDHeader))
}

func TestMiddleware_ErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   codes.Code
	}{
		{"server error", http.StatusInternalServerError, codes.Error},
		{"not found", http.StatusNotFound, codes.Unset},
		{"ok", http.StatusOK, codes.Unset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter := installRecorder(t)
			handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.want, spans[0].Status.Code)
		})
	}
}

func TestStartSpanAndRecordError(t *testing.T) {
	exporter := installRecorder(t)

	_, span := StartSpan(context.Background(), "article.Get", attribute.String("article.id", "a1"))
	err := RecordError(span, errors.New("boom"))
	span.End()

	assert.EqualError(t, err, "boom")
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "article.Get", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "a1", attrMap(spans[0].Attributes)["article.id"].AsString())

	assert.NoError(t, RecordError(span, nil))
}
