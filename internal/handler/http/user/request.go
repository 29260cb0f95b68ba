// Package user serves the user, profile and subscription endpoints.
package user

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"mdd-backend/internal/domain/entity"
	"mdd-backend/internal/handler/http/auth"
	userUC "mdd-backend/internal/usecase/user"
)

type createRequest struct {
	Email    string `json:"email" example:"bob@example.com"`
	Username string `json:"username" example:"bob"`
	Password string `json:"password" example:"hunter22"`
}

func (r createRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, entity.EmailRules...),
		validation.Field(&r.Username, entity.UsernameRules...),
		validation.Field(&r.Password, entity.PasswordRules...),
	)
}

// updateRequest carries a partial update. Blank fields are left unchanged.
type updateRequest struct {
	Email    string `json:"email,omitempty" example:"bob@example.com"`
	Username string `json:"username,omitempty" example:"bob"`
	Password string `json:"password,omitempty"`
}

func (r updateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, is.EmailFormat.Error("Email should be valid"), validation.Length(0, 254)),
		validation.Field(&r.Username, validation.Length(0, 64)),
		validation.Field(&r.Password, validation.Length(0, 72)),
	)
}

func (r updateRequest) input() userUC.UpdateInput {
	return userUC.UpdateInput{Email: r.Email, Username: r.Username, Password: r.Password}
}

func currentEmail(r *http.Request) (string, error) {
	email, ok := auth.EmailFromContext(r.Context())
	if !ok {
		return "", auth.ErrUnauthenticated
	}
	return email, nil
}
