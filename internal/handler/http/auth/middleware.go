// Package auth serves registration, login and logout, and guards protected
// routes with the session token.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"mdd-backend/internal/domain/entity"
	"mdd-backend/internal/handler/http/respond"
	tokens "mdd-backend/internal/service/auth"
)

var (
	// ErrUnauthenticated is returned when a protected route is called without a token.
	ErrUnauthenticated = entity.AuthenticationFailed("authentication required")
	// ErrInvalidToken is returned for tokens that fail verification.
	ErrInvalidToken = entity.AuthenticationFailed("invalid or expired token")
)

// TokenVerifier returns the subject of a valid token.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type ctxKey string

const ctxEmail ctxKey = "email"

// WithEmail stores the authenticated user's email in ctx.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, ctxEmail, email)
}

// EmailFromContext returns the email set by Require.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(ctxEmail).(string)
	return email, ok && email != ""
}

// ResolveToken returns the bearer token from the Authorization header, or
// the token cookie when no header is present.
func ResolveToken(r *http.Request) string {
	const prefix = "Bearer "
	if h := r.Header.Get("Authorization"); len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

// Require rejects requests without a valid token with 401 and stores the
// token subject in the request context.
func Require(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ResolveToken(r)
			if token == "" {
				recordVerification(verifyMissing)
				respond.Problem(w, r, ErrUnauthenticated)
				return
			}
			email, err := v.Verify(token)
			if err != nil {
				if errors.Is(err, tokens.ErrTokenExpired) {
					recordVerification(verifyExpired)
				} else {
					recordVerification(verifyInvalid)
				}
				respond.Problem(w, r, ErrInvalidToken)
				return
			}
			recordVerification(verifySuccess)
			next.ServeHTTP(w, r.WithContext(WithEmail(r.Context(), email)))
		})
	}
}
