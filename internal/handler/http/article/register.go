package article

import (
	"log/slog"
	"net/http"

	"mdd-backend/internal/handler/http/auth"
	artUC "mdd-backend/internal/usecase/article"
)

// Register registers the article endpoints. Every route requires a session token.
func Register(mux *http.ServeMux, svc *artUC.Service, v auth.TokenVerifier, logger *slog.Logger) {
	protect := auth.Require(v)

	mux.Handle("GET /api/articles", protect(ListHandler{Svc: svc, Logger: logger}))
	mux.Handle("POST /api/articles", protect(CreateHandler{svc}))
	mux.Handle("GET /api/articles/{id}", protect(GetHandler{svc}))
	mux.Handle("DELETE /api/articles/{id}", protect(DeleteHandler{svc}))
}
