// Package postgres implements the repository interfaces on PostgreSQL through
// database/sql and the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"mdd-backend/internal/domain/entity"
)

// Querier is the subset of *sql.DB the repositories use.
// *sql.DB, *sql.Tx and *circuitbreaker.DB all satisfy it.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const uniqueViolation = "23505"

// duplicateMessages maps unique constraint names from the migrations to the
// message reported to clients.
var duplicateMessages = map[string]string{
	"users_email_key":    "email already exists",
	"users_username_key": "username already exists",
	"topics_name_key":    "topic name already exists",
}

// storeError classifies err for the service layer. Unique violations become
// entity.ErrDuplicate; anything else is wrapped as entity.ErrDatabase.
func storeError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		msg, ok := duplicateMessages[pgErr.ConstraintName]
		if !ok {
			msg = "resource already exists"
		}
		return fmt.Errorf("%s: %w", op, entity.Duplicate(msg))
	}
	return entity.WrapStore(op, err)
}

// affectOne turns a zero row count into a not-found error.
func affectOne(op string, res sql.Result, notFound string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storeError(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, entity.NotFound(notFound))
	}
	return nil
}
