package auth

import (
	"errors"
	"net/http"

	"mdd-backend/internal/handler/http/dto"
	"mdd-backend/internal/handler/http/respond"
	userUC "mdd-backend/internal/usecase/user"
)

type MeHandler struct{ Svc *userUC.Service }

// ServeHTTP returns the signed-in user.
// @Summary      Current user
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} dto.User
// @Failure      401 {object} respond.ErrorResponse "Not signed in"
// @Router       /api/auth/me [get]
func (h MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	email, ok := EmailFromContext(r.Context())
	if !ok {
		respond.Problem(w, r, ErrUnauthenticated)
		return
	}
	v, err := h.Svc.GetByEmail(r.Context(), email)
	if errors.Is(err, userUC.ErrUserNotFound) {
		// the account was deleted after the token was issued
		respond.Problem(w, r, ErrInvalidToken)
		return
	}
	if err != nil {
		respond.Problem(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.FromUser(v))
}
