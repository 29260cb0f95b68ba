package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error kinds. Every error that crosses the service boundary matches exactly one
// of them through errors.Is; the HTTP layer maps each kind to a fixed status.
var (
	// ErrValidationFailed indicates malformed or missing input.
	ErrValidationFailed = errors.New("validation failed")

	// ErrAuthenticationFailed indicates bad credentials or a missing/invalid token.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrNotFound indicates that a requested entity was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicate indicates a uniqueness violation.
	ErrDuplicate = errors.New("resource already exists")

	// ErrBusinessLogic indicates a cross-entity orchestration failure.
	ErrBusinessLogic = errors.New("business logic error")

	// ErrDatabase indicates an unexpected persistence failure.
	ErrDatabase = errors.New("database operation failed")
)

// Error is a classified domain error. Msg is safe to show to API clients,
// Err keeps the underlying cause for logs.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

// Error returns the user message followed by the cause, if any.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

// Message returns the client-facing message.
func (e *Error) Message() string { return e.Msg }

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool { return target == e.Kind }

// Unwrap returns the cause.
func (e *Error) Unwrap() error { return e.Err }

// NotFound returns a ResourceNotFound error with the given message.
func NotFound(msg string) *Error {
	return &Error{Kind: ErrNotFound, Msg: msg}
}

// Duplicate returns a DuplicateResource error with the given message.
func Duplicate(msg string) *Error {
	return &Error{Kind: ErrDuplicate, Msg: msg}
}

// AuthenticationFailed returns an AuthenticationFailed error with the given message.
func AuthenticationFailed(msg string) *Error {
	return &Error{Kind: ErrAuthenticationFailed, Msg: msg}
}

// Invalid returns a validation failure with the given message.
func Invalid(msg string) *Error {
	return &Error{Kind: ErrValidationFailed, Msg: msg}
}

// BusinessLogic returns a BusinessLogicError wrapping cause.
func BusinessLogic(msg string, cause error) *Error {
	return &Error{Kind: ErrBusinessLogic, Msg: msg, Err: cause}
}

// WrapStore classifies a repository failure. Errors that already carry a kind
// (duplicates from unique constraints, not-found) keep it; anything else
// becomes a DatabaseOperationError tagged with op.
func WrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return fmt.Errorf("%s: %w", op, err)
	}
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return &Error{Kind: ErrDatabase, Msg: "database operation failed", Err: fmt.Errorf("%s: %w", op, err)}
}

// ValidationErrors maps request field names to messages.
type ValidationErrors map[string]string

// Error lists the failing fields in a stable order.
func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is makes ValidationErrors match ErrValidationFailed.
func (v ValidationErrors) Is(target error) bool { return target == ErrValidationFailed }
