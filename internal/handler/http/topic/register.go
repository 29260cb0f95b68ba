package topic

import (
	"net/http"

	"mdd-backend/internal/handler/http/auth"
	topicUC "mdd-backend/internal/usecase/topic"
)

// Register registers the topic endpoints. Every route requires a session token.
func Register(mux *http.ServeMux, svc *topicUC.Service, v auth.TokenVerifier) {
	protect := auth.Require(v)

	mux.Handle("GET /api/topics", protect(ListHandler{svc}))
	mux.Handle("POST /api/topics", protect(CreateHandler{svc}))
	mux.Handle("GET /api/topics/{id}", protect(GetHandler{svc}))
	mux.Handle("DELETE /api/topics/{id}", protect(DeleteHandler{svc}))
}
