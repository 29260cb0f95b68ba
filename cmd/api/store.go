package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"mdd-backend/internal/config"
	hhttp "mdd-backend/internal/handler/http"
	"mdd-backend/internal/infra/adapter/persistence/memory"
	"mdd-backend/internal/infra/adapter/persistence/mongo"
	pgRepo "mdd-backend/internal/infra/adapter/persistence/postgres"
	"mdd-backend/internal/infra/db"
	"mdd-backend/internal/observability/metrics"
	"mdd-backend/internal/resilience/circuitbreaker"
	"mdd-backend/internal/resilience/retry"
)

// store is the selected persistence backend.
type store struct {
	repos  hhttp.Repositories
	pinger hhttp.Pinger
	close  func(context.Context) error
}

// openStore connects the backend named by cfg.Driver, retrying while the
// server is unreachable. Postgres is migrated and mongo gets its indexes
// before the server accepts traffic.
func openStore(ctx context.Context, cfg config.Store, logger *slog.Logger) (*store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		var database *sql.DB
		err := retry.Do(ctx, retry.StoreConnectConfig(), func(ctx context.Context) error {
			var err error
			database, err = db.Open(ctx, cfg.DatabaseURL, cfg.Pool)
			return err
		})
		if err != nil {
			return nil, err
		}
		if err := db.MigrateUp(ctx, database); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		if err := metrics.RegisterDBStats(database, "mdd"); err != nil {
			logger.Warn("failed to register database pool metrics", slog.Any("error", err))
		}
		guarded := circuitbreaker.NewDB(database)
		return &store{
			repos: hhttp.Repositories{
				Users:    pgRepo.NewUserRepo(guarded),
				Topics:   pgRepo.NewTopicRepo(guarded),
				Articles: pgRepo.NewArticleRepo(guarded),
				Comments: pgRepo.NewCommentRepo(guarded),
			},
			pinger: guarded,
			close:  func(context.Context) error { return database.Close() },
		}, nil

	case config.DriverMongo:
		var ms *mongo.Store
		connect := retry.StoreConnectConfig()
		connect.Retryable = func(err error) bool { return mongo.IsTransient(err) || retry.IsRetryable(err) }
		err := retry.Do(ctx, connect, func(ctx context.Context) error {
			var err error
			ms, err = mongo.Open(ctx, cfg)
			return err
		})
		if err != nil {
			return nil, err
		}
		if err := ms.EnsureIndexes(ctx); err != nil {
			_ = ms.Close(ctx)
			return nil, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		return &store{
			repos: hhttp.Repositories{
				Users:    ms.Users(),
				Topics:   ms.Topics(),
				Articles: ms.Articles(),
				Comments: ms.Comments(),
			},
			pinger: ms,
			close:  ms.Close,
		}, nil

	case config.DriverMemory:
		logger.Warn("using the in-memory store: data is lost on restart")
		mem := memory.New()
		return &store{
			repos: hhttp.Repositories{
				Users:    mem.Users(),
				Topics:   mem.Topics(),
				Articles: mem.Articles(),
				Comments: mem.Comments(),
			},
			pinger: mem,
			close:  func(context.Context) error { return nil },
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
