package repository

import (
	"context"

	"mdd-backend/internal/domain/entity"
)

type TopicRepository interface {
	Get(ctx context.Context, id string) (*entity.Topic, error)
	// GetMany returns the topics whose IDs are listed, skipping unknown IDs.
	// The result follows the order of ids.
	GetMany(ctx context.Context, ids []string) ([]*entity.Topic, error)
	List(ctx context.Context) ([]*entity.Topic, error)
	Create(ctx context.Context, topic *entity.Topic) error
	Delete(ctx context.Context, id string) error
}
