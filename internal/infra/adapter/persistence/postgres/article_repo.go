package postgres

import (
	"context"
	"database/sql"
	"errors"

	"mdd-backend/internal/domain/entity"
	"mdd-backend/internal/repository"
)

type ArticleRepo struct{ db Querier }

func NewArticleRepo(db Querier) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

func (repo *ArticleRepo) Get(ctx context.Context, id string) (*entity.Article, error) {
	const query = `
SELECT id, title, content, created_at, author_id, topic_id
FROM articles
WHERE id = $1`
	var a entity.Article
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.Title, &a.Content, &a.CreatedAt, &a.AuthorID, &a.TopicID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError("Get", err)
	}
	return &a, nil
}

// List orders by created_at, breaking ties by id so equal timestamps keep a stable order.
func (repo *ArticleRepo) List(ctx context.Context, sort entity.SortKey) ([]*entity.Article, error) {
	const ascQuery = `
SELECT id, title, content, created_at, author_id, topic_id
FROM articles
ORDER BY created_at ASC, id ASC`
	const descQuery = `
SELECT id, title, content, created_at, author_id, topic_id
FROM articles
ORDER BY created_at DESC, id DESC`

	query := ascQuery
	if sort.Descending() {
		query = descQuery
	}

	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeError("List", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 50)
	for rows.Next() {
		var a entity.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.CreatedAt, &a.AuthorID, &a.TopicID); err != nil {
			return nil, storeError("List", err)
		}
		articles = append(articles, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("List", err)
	}
	return articles, nil
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles (title, content, created_at, author_id, topic_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		article.Title, article.Content, article.CreatedAt, article.AuthorID, article.TopicID,
	).Scan(&article.ID)
	if err != nil {
		return storeError("Create", err)
	}
	return nil
}

func (repo *ArticleRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM articles WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return storeError("Delete", err)
	}
	return affectOne("Delete", res, "article not found")
}
