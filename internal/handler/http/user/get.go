package user

import (
	"net/http"

	"mdd-backend/internal/handler/http/dto"
	"mdd-backend/internal/handler/http/pathutil"
	"mdd-backend/internal/handler/http/respond"
	userUC "mdd-backend/internal/usecase/user"
)

type GetHandler struct{ Svc *userUC.Service }

// ServeHTTP returns one user.
// @Summary      Get user
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} dto.User
// @Failure      404 {object} respond.ErrorResponse
// @Router       /api/users/{id} [get]
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
	respond.JSON(w, http.StatusOK, dto.FromUser(v))
}
