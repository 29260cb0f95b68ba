package postgres

import (
	"context"
	"database/sql"
	"errors"

	"mdd-backend/internal/domain/entity"
	"mdd-backend/internal/repository"
)

type CommentRepo struct{ db Querier }

func NewCommentRepo(db Querier) repository.CommentRepository {
	return &CommentRepo{db: db}
}

func (repo *CommentRepo) Get(ctx context.Context, id string) (*entity.Comment, error) {
	const query = `
SELECT id, content, created_at, author_id, article_id
FROM comments
WHERE id = $1`
	var c entity.Comment
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Content, &c.CreatedAt, &c.AuthorID, &c.ArticleID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError("Get", err)
	}
	return &c, nil
}

func (repo *CommentRepo) List(ctx context.Context) ([]*entity.Comment, error) {
	const query = `
SELECT id, content, created_at, author_id, article_id
FROM comments
ORDER BY created_at ASC, id ASC`
	return repo.query(ctx, "List", query)
}

func (repo *CommentRepo) ListByArticle(ctx context.Context, articleID string) ([]*entity.Comment, error) {
	const query = `
SELECT id, content, created_at, author_id, article_id
FROM comments
WHERE article_id = $1
ORDER BY created_at ASC, id ASC`
	return repo.query(ctx, "ListByArticle", query, articleID)
}

func (repo *CommentRepo) query(ctx context.Context, op, query string, args ...any) ([]*entity.Comment, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError(op, err)
	}
	defer func() { _ = rows.Close() }()

	comments := make([]*entity.Comment, 0, 50)
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.Content, &c.CreatedAt, &c.AuthorID, &c.ArticleID); err != nil {
			return nil, storeError(op, err)
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(op, err)
	}
	return comments, nil
}

func (repo *CommentRepo) Create(ctx context.Context, comment *entity.Comment) error {
	const query = `
INSERT INTO comments (content, created_at, author_id, article_id)
VALUES ($1, $2, $3, $4)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		comment.Content, comment.CreatedAt, comment.AuthorID, comment.ArticleID,
	).Scan(&comment.ID)
	if err != nil {
		return storeError("Create", err)
	}
	return nil
}

func (repo *CommentRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM comments WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return storeError("Delete", err)
	}
	return affectOne("Delete", res, "comment not found")
}
