package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"mdd-backend/internal/domain/entity"
	"mdd-backend/internal/repository"
)

type TopicRepo struct{ db Querier }

func NewTopicRepo(db Querier) repository.TopicRepository {
	return &TopicRepo{db: db}
}

func (repo *TopicRepo) Get(ctx context.Context, id string) (*entity.Topic, error) {
	const query = `
SELECT id, name, description
FROM topics
WHERE id = $1`
	var t entity.Topic
	err := repo.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError("Get", err)
	}
	return &t, nil
}

func (repo *TopicRepo) GetMany(ctx context.Context, ids []string) ([]*entity.Topic, error) {
	if len(ids) == 0 {
		return []*entity.Topic{}, nil
	}
	const query = `
SELECT id, name, description
FROM topics
WHERE id = ANY($1)`
	found, err := repo.query(ctx, "GetMany", query, pq.Array(ids))
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entity.Topic, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}
	topics := make([]*entity.Topic, 0, len(found))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			topics = append(topics, t)
		}
	}
	return topics, nil
}

func (repo *TopicRepo) List(ctx context.Context) ([]*entity.Topic, error) {
	const query = `
SELECT id, name, description
FROM topics
ORDER BY name ASC`
	return repo.query(ctx, "List", query)
}

func (repo *TopicRepo) query(ctx context.Context, op, query string, args ...any) ([]*entity.Topic, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError(op, err)
	}
	defer func() { _ = rows.Close() }()

	topics := make([]*entity.Topic, 0, 50)
	for rows.Next() {
		var t entity.Topic
		if err := rows.Scan(&t.ID, &t.Name, &t.Description); err != nil {
			return nil, storeError(op, err)
		}
		topics = append(topics, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(op, err)
	}
	return topics, nil
}

func (repo *TopicRepo) Create(ctx context.Context, topic *entity.Topic) error {
	const query = `
INSERT INTO topics (name, description)
VALUES ($1, $2)
RETURNING id`
	if err := repo.db.QueryRowContext(ctx, query, topic.Name, topic.Description).Scan(&topic.ID); err != nil {
		return storeError("Create", err)
	}
	return nil
}

func (repo *TopicRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM topics WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return storeError("Delete", err)
	}
	return affectOne("Delete", res, "topic not found")
}
