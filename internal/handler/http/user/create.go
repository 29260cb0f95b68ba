package user

import (
	"net/http"

	"mdd-backend/internal/handler/http/dto"
	"mdd-backend/internal/handler/http/request"
	"mdd-backend/internal/handler/http/respond"
	userUC "mdd-backend/internal/usecase/user"
)

type CreateHandler struct{ Svc *userUC.Service }

// ServeHTTP creates a user without signing in as them.
// @Summary      Create user
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body createRequest true "User"
// @Success      201 {object} dto.User
// @Failure      400 {object} respond.ErrorResponse
// @Failure      409 {object} respond.ErrorResponse "Email or username taken"
// @Router       /api/users [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := request.Decode(r, &req); err != nil {
		respond.Problem(w, r, err)
		return
	}
	v, err := h.Svc.Create(r.Context(), userUC.CreateInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respond.Problem(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, dto.FromUser(v))
}
