package circuitbreaker

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sony/gobreaker"
)

// DB wraps a *sql.DB with circuit breaker protection. It has the same
// query methods as *sql.DB, so repositories accept either.
type DB struct {
	cb *CircuitBreaker
	db *sql.DB
}

// NewDB wraps db with StoreConfig("postgres").
func NewDB(db *sql.DB) *DB {
	return NewDBWithConfig(db, StoreConfig("postgres"))
}

// NewDBWithConfig wraps db with a custom configuration.
func NewDBWithConfig(db *sql.DB, cfg Config) *DB {
	return &DB{cb: New(cfg, IsClientError), db: db}
}

// IsClientError reports errors caused by the request rather than by an
// unhealthy database: missing rows and integrity constraint violations
// (SQLSTATE class 23).
func IsClientError(err error) bool {
	if errors.Is(err, sql.ErrNoRows) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && len(pgErr.Code) == 5 && pgErr.Code[:2] == "23"
}

// QueryContext executes a query through the breaker.
func (d *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return Do(d.cb, func() (*sql.Rows, error) {
		return d.db.QueryContext(ctx, query, args...)
	})
}

// ExecContext executes a statement through the breaker.
func (d *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return Do(d.cb, func() (sql.Result, error) {
		return d.db.ExecContext(ctx, query, args...)
	})
}

// QueryRowContext bypasses the breaker: *sql.Row defers its error until Scan.
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return d.db.QueryRowContext(ctx, query, args...)
}

// PingContext checks the database through the breaker; an open breaker fails fast.
func (d *DB) PingContext(ctx context.Context) error {
	_, err := d.cb.Execute(func() (any, error) {
		return nil, d.db.PingContext(ctx)
	})
	return err
}

// State returns the current state of the circuit breaker.
func (d *DB) State() gobreaker.State {
	return d.cb.State()
}

// IsOpen returns true if the circuit breaker is in the open state.
func (d *DB) IsOpen() bool {
	return d.cb.IsOpen()
}

// Ping lets the wrapped database serve as a health check target.
func (d *DB) Ping(ctx context.Context) error {
	return d.PingContext(ctx)
}

// Stats returns the connection pool statistics of the wrapped database.
func (d *DB) Stats() sql.DBStats {
	return d.db.Stats()
}
