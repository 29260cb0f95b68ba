package comment

import (
	"net/http"

	"mdd-backend/internal/handler/http/auth"
	commentUC "mdd-backend/internal/usecase/comment"
)

// Register registers the comment endpoints. Every route requires a session token.
func Register(mux *http.ServeMux, svc *commentUC.Service, v auth.TokenVerifier) {
	protect := auth.Require(v)

	mux.Handle("GET /api/comments", protect(ListHandler{svc}))
	mux.Handle("POST /api/comments", protect(CreateHandler{svc}))
	mux.Handle("GET /api/comments/{id}", protect(GetHandler{svc}))
	mux.Handle("DELETE /api/comments/{id}", protect(DeleteHandler{svc}))
}
