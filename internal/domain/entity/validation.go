package entity

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	maxEmailLength    = 254
	maxUsernameLength = 64
	maxPasswordLength = 72 // bcrypt ignores bytes beyond 72
	maxTitleLength    = 200
	maxNameLength     = 100
)

// Shared field rules for request validation.
var (
	EmailRules = []validation.Rule{
		validation.Required.Error("Email is required"),
		validation.Length(0, maxEmailLength).Error("Email is too long"),
		is.EmailFormat.Error("Email should be valid"),
	}
	UsernameRules = []validation.Rule{
		validation.Required.Error("Username is required"),
		NotBlank("Username is required"),
		validation.Length(0, maxUsernameLength).Error("Username is too long"),
	}
	PasswordRules = []validation.Rule{
		validation.Required.Error("Password is required"),
		validation.Length(0, maxPasswordLength).Error("Password is too long"),
	}
	TitleRules = []validation.Rule{
		validation.Required.Error("Title is required"),
		NotBlank("Title is required"),
		validation.Length(0, maxTitleLength).Error("Title is too long"),
	}
	TopicNameRules = []validation.Rule{
		validation.Required.Error("Name is required"),
		NotBlank("Name is required"),
		validation.Length(0, maxNameLength).Error("Name is too long"),
	}
)

// NotBlank rejects strings made only of whitespace, which Required lets
// through. Empty values are left to Required.
func NotBlank(msg string) validation.Rule {
	return validation.By(func(value any) error {
		s, _ := value.(string)
		if s != "" && strings.TrimSpace(s) == "" {
			return errors.New(msg)
		}
		return nil
	})
}

// FieldErrors converts the result of validation.ValidateStruct into
// ValidationErrors. Nil stays nil; errors that are not field errors are
// returned unchanged.
func FieldErrors(err error) error {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(ValidationErrors, len(verrs))
	for field, ferr := range verrs {
		if ferr == nil {
			continue
		}
		out[field] = ferr.Error()
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ValidateEmail checks an optional email value used in partial updates.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return nil
	}
	if err := validation.Validate(email, EmailRules...); err != nil {
		return ValidationErrors{"email": err.Error()}
	}
	return nil
}
