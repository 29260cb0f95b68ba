package user

import (
	"net/http"

	"mdd-backend/internal/handler/http/dto"
	"mdd-backend/internal/handler/http/respond"
	userUC "mdd-backend/internal/usecase/user"
)

type ListHandler struct{ Svc *userUC.Service }

// ServeHTTP lists all users with their subscriptions.
// @Summary      List users
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} dto.User
// @Failure      401 {object} respond.ErrorResponse
// @Router       /api/users [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	list, err := h.Svc.List(r.Context())
	if err != nil {
		respond.Problem(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.FromUsers(list))
}
