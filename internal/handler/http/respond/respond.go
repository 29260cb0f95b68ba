// Package respond writes JSON responses and maps domain errors to HTTP
// statuses. Server errors are logged with the request ID and replaced by a
// generic message before reaching the client.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"mdd-backend/internal/domain/entity"
	"mdd-backend/internal/observability/logging"
)

// InternalMessage replaces the message of every 5xx response.
const InternalMessage = "internal server error"

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Message     string            `json:"message" example:"user not found"`
	Status      int               `json:"status" example:"404"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

// errorRecorder is implemented by response writers that keep the error of
// the request for the access log.
type errorRecorder interface {
	RecordError(err error)
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Status maps err to its HTTP status. The outermost classified error decides,
// so a business logic error caused by a missing resource stays a 400.
func Status(err error) int {
	var e *entity.Error
	if errors.As(err, &e) {
		return kindStatus(e.Kind)
	}
	var verrs entity.ValidationErrors
	if errors.As(err, &verrs) {
		return http.StatusBadRequest
	}
	for _, kind := range []error{
		entity.ErrValidationFailed,
		entity.ErrAuthenticationFailed,
		entity.ErrNotFound,
		entity.ErrDuplicate,
		entity.ErrBusinessLogic,
	} {
		if errors.Is(err, kind) {
			return kindStatus(kind)
		}
	}
	return http.StatusInternalServerError
}

func kindStatus(kind error) int {
	switch kind {
	case entity.ErrValidationFailed, entity.ErrBusinessLogic:
		return http.StatusBadRequest
	case entity.ErrAuthenticationFailed:
		return http.StatusUnauthorized
	case entity.ErrNotFound:
		return http.StatusNotFound
	case entity.ErrDuplicate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Problem writes err as an ErrorResponse with the status from Status.
func Problem(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	if rec, ok := w.(errorRecorder); ok {
		rec.RecordError(err)
	}

	code := Status(err)
	body := ErrorResponse{Status: code, Message: message(err)}

	var verrs entity.ValidationErrors
	if errors.As(err, &verrs) {
		body.FieldErrors = verrs
	}

	if code >= http.StatusInternalServerError {
		logger := logging.FromContext(r.Context())
		logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", SanitizeError(err)))
		body.Message = InternalMessage
		body.FieldErrors = nil
	}
	JSON(w, code, body)
}

// Message writes a plain ErrorResponse for failures that are not domain
// errors, such as rate limiting.
func Message(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, ErrorResponse{Status: code, Message: msg})
}

func message(err error) string {
	var e *entity.Error
	if errors.As(err, &e) {
		return e.Message()
	}
	var verrs entity.ValidationErrors
	if errors.As(err, &verrs) {
		return entity.ErrValidationFailed.Error()
	}
	return err.Error()
}
