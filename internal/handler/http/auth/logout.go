package auth

import (
	"net/http"

	"mdd-backend/internal/handler/http/dto"
	"mdd-backend/internal/handler/http/respond"
)

type LogoutHandler struct{ Cookie Cookie }

// ServeHTTP clears the session cookie. Tokens stay valid until they expire.
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.MessageResponse
// @Router       /api/auth/logout [post]
func (h LogoutHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	h.Cookie.Clear(w)
	respond.JSON(w, http.StatusOK, dto.MessageResponse{Message: "logged out"})
}
