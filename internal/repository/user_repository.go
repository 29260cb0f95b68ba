package repository

import (
	"context"

	"mdd-backend/internal/domain/entity"
)

// UserRepository persists users. Lookups return (nil, nil) when no user matches.
// Create and Update report unique email/username violations as entity.ErrDuplicate.
type UserRepository interface {
	Get(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	// AddSubscription adds topicID to the user's set unless already present.
	AddSubscription(ctx context.Context, userID, topicID string) error
	// RemoveSubscription removes topicID from the user's set; absent IDs are ignored.
	RemoveSubscription(ctx context.Context, userID, topicID string) error
	Delete(ctx context.Context, id string) error
}
