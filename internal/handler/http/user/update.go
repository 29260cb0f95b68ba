package user

import (
	"net/http"

	"mdd-backend/internal/handler/http/dto"
	"mdd-backend/internal/handler/http/pathutil"
	"mdd-backend/internal/handler/http/request"
	"mdd-backend/internal/handler/http/respond"
	userUC "mdd-backend/internal/usecase/user"
)

type UpdateHandler struct{ Svc *userUC.Service }

// ServeHTTP applies a partial update to a user.
// @Summary      Update user
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID"
// @Param        request body updateRequest true "Fields to change"
// @Success      200 {object} dto.User
// @Failure      400 {object} respond.ErrorResponse
// @Failure      404 {object} respond.ErrorResponse
// @Failure      409 {object} respond.ErrorResponse
// @Router       /api/users/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.Problem(w, r, err)
		return
	}
	var req updateRequest
	if err := request.Decode(r, &req); err != nil {
		respond.Problem(w, r, err)
		return
	}
	v, err := h.Svc.Update(r.Context(), id, req.input())
	if err != nil {
		respond.Problem(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.FromUser(v))
}
