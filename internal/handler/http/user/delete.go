package user

import (
	"net/http"

	"mdd-backend/internal/handler/http/dto"
	"mdd-backend/internal/handler/http/pathutil"
	"mdd-backend/internal/handler/http/respond"
	userUC "mdd-backend/internal/usecase/user"
)

type DeleteHandler struct{ Svc *userUC.Service }

// ServeHTTP deletes a user. Their articles and comments are kept.
// @Summary      Delete user
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} dto.MessageResponse
// @Failure      404 {object} respond.ErrorResponse
// @Router       /api/users/{id} [delete]
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
	respond.JSON(w, http.StatusOK, dto.MessageResponse{Message: "user deleted"})
}
