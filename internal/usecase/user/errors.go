// Package user implements account management: creation with hashed
// passwords, partial profile updates, topic subscriptions and the user view
// with its subscriptions resolved to topics.
package user

import "mdd-backend/internal/domain/entity"

// Sentinel errors for user use case operations.
var (
	// ErrUserNotFound indicates that no user matches the given ID or email.
	ErrUserNotFound = entity.NotFound("user not found")

	// ErrTopicNotFound is returned when subscribing to a topic that does not exist.
	ErrTopicNotFound = entity.NotFound("topic not found")
)
