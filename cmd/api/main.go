package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mdd-backend/internal/config"
	hhttp "mdd-backend/internal/handler/http"
	hauth "mdd-backend/internal/handler/http/auth"
	"mdd-backend/internal/handler/http/middleware"
	"mdd-backend/internal/observability/logging"
	"mdd-backend/internal/observability/tracing"
	authservice "mdd-backend/internal/service/auth"

	_ "mdd-backend/docs" // swagger docs
)

// @title           MDD API
// @version         1.0
// @description     REST API of the MDD developer network: accounts, topics, articles and comments.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token as "Bearer {token}". The token cookie is accepted as well.

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp := tracing.Setup()
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Warn("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	st, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(context.Background()); err != nil {
			logger.Error("failed to close store", slog.Any("error", err))
		}
	}()

	handler, err := newHandler(cfg, st, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", cfg.Version),
			slog.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// newHandler builds the services over st and the full middleware stack.
func newHandler(cfg config.Config, st *store, logger *slog.Logger) (http.Handler, error) {
	tokens := authservice.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)

	ips, err := middleware.NewIPExtractor(cfg.AuthRateLimit.TrustedProxies)
	if err != nil {
		return nil, err
	}
	limiter := middleware.NewRateLimiter(cfg.AuthRateLimit.Limit, cfg.AuthRateLimit.Window, ips)
	logger.Info("auth rate limiting enabled",
		slog.Int("limit", cfg.AuthRateLimit.Limit),
		slog.Duration("window", cfg.AuthRateLimit.Window),
		slog.Int("trusted_proxies", len(cfg.AuthRateLimit.TrustedProxies)))

	corsConfig := middleware.NewCORSConfig(cfg.CORS, logger)
	logger.Info("CORS enabled",
		slog.Any("allowed_origins", cfg.CORS.AllowedOrigins),
		slog.Any("allowed_methods", cfg.CORS.AllowedMethods),
		slog.Int("max_age", cfg.CORS.MaxAge))

	return hhttp.NewRouter(hhttp.RouterConfig{
		Services:       hhttp.NewServices(st.repos, tokens, cfg.BcryptCost),
		Verifier:       tokens,
		Tokens:         tokens,
		Cookie:         hauth.Cookie{Secure: cfg.Cookie.Secure, TTL: tokens.TTL()},
		Throttle:       limiter.Middleware,
		CORS:           corsConfig,
		Store:          st.pinger,
		Driver:         cfg.Store.Driver,
		Version:        cfg.Version,
		Logger:         logger,
		RequestTimeout: requestTimeout,
	}), nil
}
