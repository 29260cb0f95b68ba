package comment

import (
	"net/http"

	"mdd-backend/internal/handler/http/dto"
	"mdd-backend/internal/handler/http/pathutil"
	"mdd-backend/internal/handler/http/respond"
	commentUC "mdd-backend/internal/usecase/comment"
)

type DeleteHandler struct{ Svc *commentUC.Service }

// ServeHTTP deletes a comment.
// @Summary      Delete comment
// @Tags         comments
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Comment ID"
// @Success      200 {object} dto.MessageResponse
// @Failure      404 {object} respond.ErrorResponse
// @Router       /api/comments/{id} [delete]
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
	respond.JSON(w, http.StatusOK, dto.MessageResponse{Message: "comment deleted"})
}
