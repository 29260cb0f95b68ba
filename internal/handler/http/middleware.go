package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"mdd-backend/internal/handler/http/respond"
	"mdd-backend/internal/handler/http/responsewriter"
	"mdd-backend/internal/observability/logging"
)

// Logging logs one line per request and stores a logger tagged with the
// request ID in the request context for the handlers. Server errors are
// logged at error level with the error the handler answered with.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLogger := logging.WithRequestID(r.Context(), logger)
			r = r.WithContext(logging.WithLogger(r.Context(), reqLogger))

			wrapped := responsewriter.Wrap(w)
			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.Header.Get("User-Agent")),
				slog.Int("status", wrapped.StatusCode()),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("duration", duration),
				slog.String("duration_ms", fmt.Sprintf("%.2f", duration.Seconds()*1000)),
			}
			if err := wrapped.Err(); err != nil {
				attrs = append(attrs, slog.String("error", respond.SanitizeError(err)))
			}

			level := slog.LevelInfo
			if wrapped.StatusCode() >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logging.WithTrace(r.Context(), reqLogger).LogAttrs(r.Context(), level, "request completed", attrs...)
		})
	}
}

// Recover turns a panic into a 500 response and logs it with the stack.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// ErrAbortHandler is the sanctioned way to abort a response.
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logging.WithRequestID(r.Context(), logger).Error("panic recovered",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)
				respond.Message(w, http.StatusInternalServerError, respond.InternalMessage)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// LimitRequestBody caps request bodies at maxBytes. Reading past the limit
// fails with *http.MaxBytesError, which request.Decode reports as a 400.
func LimitRequestBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// Timeout bounds the time a handler may take. Handlers that run out of time
// have their context canceled and the client receives a 503 JSON body.
// A zero duration disables the limit.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.TimeoutHandler(next, d, timeoutBody)
	}
}

const timeoutBody = `{"message":"request timeout","status":503}`
