package comment

import (
	"net/http"

	"mdd-backend/internal/handler/http/dto"
	"mdd-backend/internal/handler/http/pathutil"
	"mdd-backend/internal/handler/http/respond"
	commentUC "mdd-backend/internal/usecase/comment"
)

type GetHandler struct{ Svc *commentUC.Service }

// ServeHTTP returns one comment.
// @Summary      Get comment
// @Tags         comments
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Comment ID"
// @Success      200 {object} dto.Comment
// @Failure      404 {object} respond.ErrorResponse
// @Router       /api/comments/{id} [get]
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
	respond.JSON(w, http.StatusOK, dto.FromComment(v))
}
