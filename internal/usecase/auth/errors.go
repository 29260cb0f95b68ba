// Package auth implements registration and login on top of the user store
// and the token service.
package auth

import "mdd-backend/internal/domain/entity"

// ErrInvalidCredentials is the single error for an unknown identifier or a
// wrong password, so callers cannot tell which one failed.
var ErrInvalidCredentials = entity.AuthenticationFailed("invalid credentials")
