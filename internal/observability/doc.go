// Package observability groups the cross-cutting telemetry of the service:
//   - logging: slog construction and request-scoped loggers
//   - metrics: domain counters and database pool statistics
//   - tracing: OpenTelemetry HTTP middleware and span helpers
package observability
