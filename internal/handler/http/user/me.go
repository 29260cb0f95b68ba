package user

import (
	"net/http"

	"mdd-backend/internal/handler/http/auth"
	"mdd-backend/internal/handler/http/dto"
	"mdd-backend/internal/handler/http/request"
	"mdd-backend/internal/handler/http/respond"
	authUC "mdd-backend/internal/usecase/auth"
	userUC "mdd-backend/internal/usecase/user"
)

type MeHandler struct{ Svc *userUC.Service }

// ServeHTTP returns the signed-in user.
// @Summary      Current user profile
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} dto.User
// @Failure      401 {object} respond.ErrorResponse
// @Failure      404 {object} respond.ErrorResponse
// @Router       /api/users/me [get]
func (h MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	email, err := currentEmail(r)
	if err != nil {
		respond.Problem(w, r, err)
		return
	}
	v, err := h.Svc.GetByEmail(r.Context(), email)
	if err != nil {
		respond.Problem(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.FromUser(v))
}

type UpdateMeHandler struct {
	Svc    *userUC.Service
	Tokens authUC.TokenIssuer
	Cookie auth.Cookie
}

// ServeHTTP updates the signed-in user. A fresh token is set as the cookie
// and returned in the X-Auth-Token header so an email change keeps the
// session valid.
// @Summary      Update current user
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body updateRequest true "Fields to change"
// @Success      200 {object} dto.User
// @Header       200 {string} X-Auth-Token "Token for the updated email"
// @Failure      400 {object} respond.ErrorResponse
// @Failure      409 {object} respond.ErrorResponse
// @Router       /api/users/me [put]
func (h UpdateMeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	email, err := currentEmail(r)
	if err != nil {
		respond.Problem(w, r, err)
		return
	}
	var req updateRequest
	if err := request.Decode(r, &req); err != nil {
		respond.Problem(w, r, err)
		return
	}
	v, err := h.Svc.UpdateByEmail(r.Context(), email, req.input())
	if err != nil {
		respond.Problem(w, r, err)
		return
	}

	token, err := h.Tokens.Issue(v.Email)
	if err != nil {
		respond.Problem(w, r, err)
		return
	}
	h.Cookie.Set(w, token)
	w.Header().Set(TokenHeader, token)
	respond.JSON(w, http.StatusOK, dto.FromUser(v))
}

// TokenHeader carries the refreshed token after a profile update.
const TokenHeader = "X-Auth-Token"
