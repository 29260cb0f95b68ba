package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"mdd-backend/internal/domain/entity"
	"mdd-backend/internal/repository"
)

type UserRepo struct{ db Querier }

func NewUserRepo(db Querier) repository.UserRepository {
	return &UserRepo{db: db}
}

const userColumns = `id, email, username, password, subscribed_topic_ids, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*entity.User, error) {
	var u entity.User
	var subs []string
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.Password, pq.Array(&subs), &u.CreatedAt); err != nil {
		return nil, err
	}
	u.SubscribedTopicIDs = subs
	if u.SubscribedTopicIDs == nil {
		u.SubscribedTopicIDs = []string{}
	}
	return &u, nil
}

func (repo *UserRepo) getOne(ctx context.Context, op, query string, arg string) (*entity.User, error) {
	u, err := scanUser(repo.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError(op, err)
	}
	return u, nil
}

func (repo *UserRepo) Get(ctx context.Context, id string) (*entity.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1`
	return repo.getOne(ctx, "Get", query, id)
}

func (repo *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1`
	return repo.getOne(ctx, "GetByEmail", query, email)
}

func (repo *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE username = $1`
	return repo.getOne(ctx, "GetByUsername", query, username)
}

func (repo *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
ORDER BY created_at ASC, id ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeError("List", err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]*entity.User, 0, 50)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, storeError("List", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("List", err)
	}
	return users, nil
}

// Create inserts user and sets user.ID from the generated key.
func (repo *UserRepo) Create(ctx context.Context, user *entity.User) error {
	const query = `
INSERT INTO users (email, username, password, subscribed_topic_ids, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	subs := user.SubscribedTopicIDs
	if subs == nil {
		subs = []string{}
	}
	err := repo.db.QueryRowContext(ctx, query,
		user.Email, user.Username, user.Password, pq.Array(subs), user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return storeError("Create", err)
	}
	return nil
}

// Update writes the profile fields. The subscription set is changed only
// through AddSubscription and RemoveSubscription.
func (repo *UserRepo) Update(ctx context.Context, user *entity.User) error {
	const query = `
UPDATE users SET
       email    = $1,
       username = $2,
       password = $3
WHERE id = $4`
	res, err := repo.db.ExecContext(ctx, query, user.Email, user.Username, user.Password, user.ID)
	if err != nil {
		return storeError("Update", err)
	}
	return affectOne("Update", res, "user not found")
}

func (repo *UserRepo) AddSubscription(ctx context.Context, userID, topicID string) error {
	const query = `
UPDATE users
SET subscribed_topic_ids = array_append(subscribed_topic_ids, $2)
WHERE id = $1
  AND NOT ($2 = ANY(subscribed_topic_ids))`
	if _, err := repo.db.ExecContext(ctx, query, userID, topicID); err != nil {
		return storeError("AddSubscription", err)
	}
	return nil
}

func (repo *UserRepo) RemoveSubscription(ctx context.Context, userID, topicID string) error {
	const query = `
UPDATE users
SET subscribed_topic_ids = array_remove(subscribed_topic_ids, $2)
WHERE id = $1`
	if _, err := repo.db.ExecContext(ctx, query, userID, topicID); err != nil {
		return storeError("RemoveSubscription", err)
	}
	return nil
}

func (repo *UserRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM users WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return storeError("Delete", err)
	}
	return affectOne("Delete", res, "user not found")
}
