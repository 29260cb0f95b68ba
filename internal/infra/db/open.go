// Package db opens the PostgreSQL connection pool and applies schema migrations.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"mdd-backend/internal/config"
)

// ErrMissingDSN is returned when no connection string is configured.
var ErrMissingDSN = errors.New("DATABASE_URL not set")

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// Open creates and configures a new database connection pool and verifies it
// with a ping bounded by 5 seconds.
func Open(ctx context.Context, dsn string, pool config.DBPool) (*sql.DB, error) {
	if dsn == "" {
		return nil, ErrMissingDSN
	}

	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	slog.Info("database connection pool configured",
		slog.Int("max_open_conns", pool.MaxOpenConns),
		slog.Int("max_idle_conns", pool.MaxIdleConns),
		slog.Duration("conn_max_lifetime", pool.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", pool.ConnMaxIdleTime))

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("database connection established successfully")
	return db, nil
}
