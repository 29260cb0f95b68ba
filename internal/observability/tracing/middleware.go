package tracing

import (
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"mdd-backend/internal/handler/http/responsewriter"
)

// TraceIDHeader carries the trace ID back to the client.
const TraceIDHeader = "X-Trace-Id"

// Middleware starts a server span per request, continuing any W3C trace
// context found in the headers, and returns the trace ID in X-Trace-Id.
// Once the mux has matched a route the span is renamed after its pattern so
// that /api/articles/1 and /api/articles/2 share a span name.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		ctx, span := GetTracer().Start(ctx, r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
		)
		defer span.End()

		w.Header().Set(TraceIDHeader, span.SpanContext().TraceID().String())

		rw := responsewriter.Wrap(w)
		r = r.WithContext(ctx)
		next.ServeHTTP(rw, r)

		if route := routeName(r); route != "" {
			span.SetName(route)
			span.SetAttributes(attribute.String("http.route", r.Pattern))
		}
		span.SetAttributes(
			attribute.Int("http.status_code", rw.StatusCode()),
			attribute.String("http.method", r.Method),
			attribute.String("http.path", r.URL.Path),
		)
		if rw.StatusCode() >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(rw.StatusCode()))
		}
	})
}

// routeName returns the matched ServeMux pattern prefixed with the method.
func routeName(r *http.Request) string {
	if r.Pattern == "" {
		return ""
	}
	if strings.Contains(r.Pattern, " ") {
		return r.Pattern
	}
	return r.Method + " " + r.Pattern
}
