package repository

import (
	"context"

	"mdd-backend/internal/domain/entity"
)

type CommentRepository interface {
	Get(ctx context.Context, id string) (*entity.Comment, error)
	List(ctx context.Context) ([]*entity.Comment, error)
	// ListByArticle returns the comments of an article, oldest first.
	ListByArticle(ctx context.Context, articleID string) ([]*entity.Comment, error)
	Create(ctx context.Context, comment *entity.Comment) error
	Delete(ctx context.Context, id string) error
}
