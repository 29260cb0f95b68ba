package article

import (
	"net/http"

	"mdd-backend/internal/handler/http/dto"
	"mdd-backend/internal/handler/http/pathutil"
	"mdd-backend/internal/handler/http/respond"
	artUC "mdd-backend/internal/usecase/article"
)

type DeleteHandler struct{ Svc *artUC.Service }

// ServeHTTP deletes an article. Its comments are kept.
// @Summary      Delete article
// @Tags         articles
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Article ID"
// @Success      200 {object} dto.MessageResponse
// @Failure      404 {object} respond.ErrorResponse
// @Router       /api/articles/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.Problem(w, r, err)
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		respond.Problem(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.MessageResponse{Message: "article deleted"})
}
