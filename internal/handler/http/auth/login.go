package auth

import (
	"log/slog"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"mdd-backend/internal/handler/http/dto"
	"mdd-backend/internal/handler/http/request"
	"mdd-backend/internal/handler/http/respond"
	"mdd-backend/internal/observability/logging"
	authUC "mdd-backend/internal/usecase/auth"
)

type loginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" example:"alice"`
	Password        string `json:"password" example:"correct horse battery staple"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UsernameOrEmail, validation.Required.Error("Username or email is required")),
		validation.Field(&r.Password, validation.Required.Error("Password is required")),
	)
}

type LoginHandler struct {
	Svc    *authUC.Service
	Cookie Cookie
}

// ServeHTTP signs a user in by username or email.
// @Summary      Login
// @Description  Authenticates by username or email and returns a session token, also set as the token cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "Credentials"
// @Success      200 {object} dto.Token
// @Failure      400 {object} respond.ErrorResponse "Invalid input"
// @Failure      401 {object} respond.ErrorResponse "Invalid credentials"
// @Failure      429 {object} respond.ErrorResponse "Too many requests"
// @Router       /api/auth/login [post]
func (h LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := logging.FromContext(r.Context())

	var req loginRequest
	if err := request.Decode(r, &req); err != nil {
		RecordAuthRequest("login", err, start)
		respond.Problem(w, r, err)
		return
	}

	token, err := h.Svc.Login(r.Context(), req.UsernameOrEmail, req.Password)
	RecordAuthRequest("login", err, start)
	if err != nil {
		logger.Warn("authentication failed",
			slog.String("identifier", req.UsernameOrEmail),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		respond.Problem(w, r, err)
		return
	}

	logger.Info("authentication successful",
		slog.String("identifier", req.UsernameOrEmail),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	h.Cookie.Set(w, token)
	respond.JSON(w, http.StatusOK, dto.Token{Token: token})
}
