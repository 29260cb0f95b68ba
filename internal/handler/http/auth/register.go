package auth

import (
	"net/http"

	authUC "mdd-backend/internal/usecase/auth"
	userUC "mdd-backend/internal/usecase/user"
)

// Routes holds what the auth endpoints need.
type Routes struct {
	Auth     *authUC.Service
	Users    *userUC.Service
	Verifier TokenVerifier
	Cookie   Cookie
	// Throttle wraps login and register. Nil disables throttling.
	Throttle func(http.Handler) http.Handler
}

// Register registers the auth endpoints under /api/auth.
func Register(mux *http.ServeMux, rt Routes) {
	throttle := rt.Throttle
	if throttle == nil {
		throttle = func(h http.Handler) http.Handler { return h }
	}

	mux.Handle("POST /api/auth/register", throttle(SignupHandler{Svc: rt.Auth, Cookie: rt.Cookie}))
	mux.Handle("POST /api/auth/login", throttle(LoginHandler{Svc: rt.Auth, Cookie: rt.Cookie}))
	mux.Handle("POST /api/auth/logout", LogoutHandler{Cookie: rt.Cookie})
	mux.Handle("GET /api/auth/me", Require(rt.Verifier)(MeHandler{Svc: rt.Users}))
}
