package http

import (
	"net/http"

	"mdd-backend/internal/handler/http/respond"
)

// Header and path limits enforced by InputValidation. A session token is
// well under 1KB.
const (
	MaxAuthorizationHeader = 8 << 10
	MaxPathLength          = 2 << 10
)

// InputValidation rejects requests whose Authorization header or path is
// implausibly large before any handler parses them.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Authorization")) > MaxAuthorizationHeader {
				respond.Message(w, http.StatusBadRequest, "authorization header too large")
				return
			}
			if len(r.URL.Path) > MaxPathLength {
				respond.Message(w, http.StatusRequestURITooLong, "URI too long")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
