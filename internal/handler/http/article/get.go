package article

import (
	"net/http"

	"mdd-backend/internal/handler/http/dto"
	"mdd-backend/internal/handler/http/pathutil"
	"mdd-backend/internal/handler/http/respond"
	artUC "mdd-backend/internal/usecase/article"
)

type GetHandler struct{ Svc *artUC.Service }

// ServeHTTP returns an article with its author, topic and comments.
// @Summary      Get article
// @Tags         articles
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Article ID"
// @Success      200 {object} dto.Article
// @Failure      400 {object} respond.ErrorResponse "Author or topic no longer exists"
// @Failure      404 {object} respond.ErrorResponse
// @Router       /api/articles/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.Problem(w, r, err)
		return
	}
	v, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.Problem(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.FromArticle(v))
}
