// Package middleware holds the cross-cutting HTTP middleware that needs
// configuration: CORS for the browser client, security headers and
// per-client rate limiting.
package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"mdd-backend/internal/config"
)

// CORSConfig holds the configuration for CORS middleware.
type CORSConfig struct {
	AllowedMethods []string
	AllowedHeaders []string
	// MaxAge is how long browsers may cache a preflight result, in seconds.
	MaxAge    int
	Validator OriginValidator
	Logger    *slog.Logger
}

// NewCORSConfig builds the middleware configuration from the process config.
func NewCORSConfig(cfg config.CORS, logger *slog.Logger) CORSConfig {
	return CORSConfig{
		AllowedMethods: cfg.AllowedMethods,
		AllowedHeaders: cfg.AllowedHeaders,
		MaxAge:         cfg.MaxAge,
		Validator:      NewWhitelistValidator(cfg.AllowedOrigins),
		Logger:         logger,
	}
}

// CORS sets CORS headers for allowed origins and answers their preflight
// requests with 204. Credentials are allowed so the token cookie is sent.
// Requests from other origins pass through without CORS headers and the
// browser blocks the response.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Origin")
			if !cfg.Validator.IsAllowed(origin) {
				logger.Warn("CORS: origin not allowed",
					slog.String("origin", origin),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				logger.Debug("CORS: preflight request",
					slog.String("origin", origin),
					slog.String("requested_method", r.Header.Get("Access-Control-Request-Method")))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
