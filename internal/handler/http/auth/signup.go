package auth

import (
	"log/slog"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"mdd-backend/internal/domain/entity"
	"mdd-backend/internal/handler/http/dto"
	"mdd-backend/internal/handler/http/request"
	"mdd-backend/internal/handler/http/respond"
	"mdd-backend/internal/observability/logging"
	authUC "mdd-backend/internal/usecase/auth"
	userUC "mdd-backend/internal/usecase/user"
)

type registerRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"correct horse battery staple"`
}

func (r registerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, entity.EmailRules...),
		validation.Field(&r.Username, entity.UsernameRules...),
		validation.Field(&r.Password, entity.PasswordRules...),
	)
}

type SignupHandler struct {
	Svc    *authUC.Service
	Cookie Cookie
}

// ServeHTTP creates an account and signs the new user in.
// @Summary      Register
// @Description  Creates an account and returns a session token, also set as the token cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body registerRequest true "Account"
// @Success      201 {object} dto.Token
// @Failure      400 {object} respond.ErrorResponse "Invalid input"
// @Failure      409 {object} respond.ErrorResponse "Email or username taken"
// @Failure      429 {object} respond.ErrorResponse "Too many requests"
// @Router       /api/auth/register [post]
func (h SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := logging.FromContext(r.Context())

	var req registerRequest
	if err := request.Decode(r, &req); err != nil {
		RecordAuthRequest("register", err, start)
		respond.Problem(w, r, err)
		return
	}

	token, err := h.Svc.Register(r.Context(), userUC.CreateInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	RecordAuthRequest("register", err, start)
	if err != nil {
		logger.Warn("registration failed",
			slog.String("email", req.Email),
			slog.String("reason", respond.SanitizeError(err)))
		respond.Problem(w, r, err)
		return
	}

	logger.Info("user registered", slog.String("email", req.Email))
	h.Cookie.Set(w, token)
	respond.JSON(w, http.StatusCreated, dto.Token{Token: token})
}
