package repository

import (
	"context"

	"mdd-backend/internal/domain/entity"
)

type ArticleRepository interface {
	Get(ctx context.Context, id string) (*entity.Article, error)
	// List returns all articles ordered by creation time in the direction of sort.
	List(ctx context.Context, sort entity.SortKey) ([]*entity.Article, error)
	Create(ctx context.Context, article *entity.Article) error
	Delete(ctx context.Context, id string) error
}
