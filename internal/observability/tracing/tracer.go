// Package tracing wires OpenTelemetry spans into the HTTP server and the
// services. Exporters are configured by the process through the global
// provider; without one, spans are no-ops.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "mdd-backend"

// GetTracer returns the tracer of the global provider. It is resolved on each
// call so a provider installed after start-up is picked up.
func GetTracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// StartSpan starts an internal span named name.
//
//	ctx, span := tracing.StartSpan(ctx, "article.Get", attribute.String("article.id", id))
//	defer span.End()
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// RecordError marks span as failed when err is non-nil and returns err.
func RecordError(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
