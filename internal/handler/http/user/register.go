package user

import (
	"net/http"

	"mdd-backend/internal/handler/http/auth"
	authUC "mdd-backend/internal/usecase/auth"
	userUC "mdd-backend/internal/usecase/user"
)

// Routes holds what the user endpoints need. Tokens and Cookie refresh the
// session after the current user changes their email.
type Routes struct {
	Users    *userUC.Service
	Verifier auth.TokenVerifier
	Tokens   authUC.TokenIssuer
	Cookie   auth.Cookie
}

// Register registers the user and subscription endpoints. Every route
// requires a session token.
func Register(mux *http.ServeMux, rt Routes) {
	protect := auth.Require(rt.Verifier)
	svc := rt.Users

	mux.Handle("GET /api/users", protect(ListHandler{svc}))
	mux.Handle("POST /api/users", protect(CreateHandler{svc}))
	mux.Handle("GET /api/users/me", protect(MeHandler{svc}))
	mux.Handle("PUT /api/users/me", protect(UpdateMeHandler{Svc: svc, Tokens: rt.Tokens, Cookie: rt.Cookie}))
	mux.Handle("GET /api/users/{id}", protect(GetHandler{svc}))
	mux.Handle("PUT /api/users/{id}", protect(UpdateHandler{svc}))
	mux.Handle("DELETE /api/users/{id}", protect(DeleteHandler{svc}))

	mux.Handle("POST /api/users/{topicId}/subscriptions", protect(SubscribeHandler{svc}))
	mux.Handle("DELETE /api/users/{topicId}/unsubscriptions", protect(UnsubscribeHandler{svc}))
}
