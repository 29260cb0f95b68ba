// Package request decodes and validates JSON request bodies.
package request

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"mdd-backend/internal/domain/entity"
)

var (
	// ErrMalformedBody is returned for bodies that are not valid JSON for the target.
	ErrMalformedBody = entity.Invalid("malformed JSON body")
	// ErrEmptyBody is returned when a body is required but missing.
	ErrEmptyBody = entity.Invalid("request body is required")
	// ErrBodyTooLarge is returned when the body exceeds the server limit.
	ErrBodyTooLarge = entity.Invalid("request body too large")
)

// Decode reads the JSON body of r into v. When v implements
// validation.Validatable it is validated and failures are returned as
// entity.ValidationErrors keyed by JSON field name.
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return ErrBodyTooLarge
		case errors.Is(err, io.EOF):
			return ErrEmptyBody
		default:
			return ErrMalformedBody
		}
	}
	if val, ok := v.(validation.Validatable); ok {
		return entity.FieldErrors(val.Validate())
	}
	return nil
}
