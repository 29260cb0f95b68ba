// Package config assembles the immutable process configuration from
// defaults, an optional YAML file and environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	envcfg "mdd-backend/pkg/config"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// MinJWTSecretLength is the shortest accepted HS256 secret in bytes.
const MinJWTSecretLength = 32

var (
	ErrMissingJWTSecret = errors.New("JWT_SECRET is required")
	ErrWeakJWTSecret    = fmt.Errorf("JWT_SECRET must be at least %d bytes", MinJWTSecretLength)
)

// Config is built once by Load and passed by value to the components that need it.
type Config struct {
	Addr    string
	Version string

	JWT           JWT
	Cookie        Cookie
	CORS          CORS
	Store         Store
	AuthRateLimit RateLimit
	BcryptCost    int
}

type JWT struct {
	// SecretEnv names the environment variable holding the secret.
	SecretEnv string
	Secret    []byte
	Issuer    string
	TTL       time.Duration
}

type Cookie struct {
	Secure bool
}

type CORS struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

type Store struct {
	Driver           string
	DatabaseURL      string
	Pool             DBPool
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize int
}

// DBPool sizes the database/sql connection pool.
type DBPool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// RateLimit allows Limit requests per client within Window. Clients are
// identified by the connection address unless it belongs to one of
// TrustedProxies, in which case X-Forwarded-For is used.
type RateLimit struct {
	Limit          int
	Window         time.Duration
	TrustedProxies []string
}

// Default returns the configuration used when nothing is overridden.
// The JWT secret is left empty.
func Default() Config {
	return Config{
		Addr:    ":8080",
		Version: "dev",
		JWT: JWT{
			SecretEnv: "JWT_SECRET",
			Issuer:    "self",
			TTL:       24 * time.Hour,
		},
		Cookie: Cookie{Secure: true},
		CORS: CORS{
			AllowedOrigins: []string{"http://localhost:4200", "http://localhost"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
			MaxAge:         3600,
		},
		Store: Store{
			Driver: DriverPostgres,
			Pool: DBPool{
				MaxOpenConns:    25,
				MaxIdleConns:    10,
				ConnMaxLifetime: time.Hour,
				ConnMaxIdleTime: 30 * time.Minute,
			},
			MongoDatabase:    "mdd",
			MongoMaxPoolSize: 100,
		},
		AuthRateLimit: RateLimit{Limit: 10, Window: time.Minute},
		BcryptCost:    bcrypt.DefaultCost,
	}
}

// Load builds the configuration and validates it.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		fc, err := loadFile(path)
		if err != nil {
			return Config{}, err
		}
		fc.apply(&cfg)
	}

	cfg.Addr = envcfg.GetEnvString("HTTP_ADDR", cfg.Addr)
	cfg.Version = envcfg.GetEnvString("VERSION", cfg.Version)

	cfg.JWT.Secret = []byte(os.Getenv(cfg.JWT.SecretEnv))
	cfg.JWT.Issuer = envcfg.GetEnvString("JWT_ISSUER", cfg.JWT.Issuer)
	cfg.JWT.TTL = envcfg.GetEnvDuration("JWT_TTL", cfg.JWT.TTL)
	cfg.Cookie.Secure = envcfg.GetEnvBool("COOKIE_SECURE", cfg.Cookie.Secure)

	cfg.CORS.AllowedOrigins = envcfg.GetEnvStringList("CORS_ALLOWED_ORIGINS", cfg.CORS.AllowedOrigins)
	cfg.CORS.AllowedMethods = envcfg.GetEnvStringList("CORS_ALLOWED_METHODS", cfg.CORS.AllowedMethods)
	cfg.CORS.AllowedHeaders = envcfg.GetEnvStringList("CORS_ALLOWED_HEADERS", cfg.CORS.AllowedHeaders)
	cfg.CORS.MaxAge = envcfg.GetEnvPositiveInt("CORS_MAX_AGE", cfg.CORS.MaxAge)

	cfg.Store.Driver = envcfg.GetEnvString("STORE_DRIVER", cfg.Store.Driver)
	cfg.Store.DatabaseURL = envcfg.GetEnvString("DATABASE_URL", cfg.Store.DatabaseURL)
	cfg.Store.Pool.MaxOpenConns = envcfg.GetEnvPositiveInt("DB_MAX_OPEN_CONNS", cfg.Store.Pool.MaxOpenConns)
	cfg.Store.Pool.MaxIdleConns = envcfg.GetEnvPositiveInt("DB_MAX_IDLE_CONNS", cfg.Store.Pool.MaxIdleConns)
	cfg.Store.Pool.ConnMaxLifetime = envcfg.GetEnvDuration("DB_CONN_MAX_LIFETIME", cfg.Store.Pool.ConnMaxLifetime)
	cfg.Store.Pool.ConnMaxIdleTime = envcfg.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", cfg.Store.Pool.ConnMaxIdleTime)
	cfg.Store.MongoURI = envcfg.GetEnvString("MONGO_URI", cfg.Store.MongoURI)
	cfg.Store.MongoDatabase = envcfg.GetEnvString("MONGO_DATABASE", cfg.Store.MongoDatabase)
	cfg.Store.MongoMaxPoolSize = envcfg.GetEnvPositiveInt("MONGO_MAX_POOL_SIZE", cfg.Store.MongoMaxPoolSize)

	cfg.AuthRateLimit.Limit = envcfg.GetEnvPositiveInt("AUTH_RATE_LIMIT", cfg.AuthRateLimit.Limit)
	cfg.AuthRateLimit.Window = envcfg.GetEnvDuration("AUTH_RATE_WINDOW", cfg.AuthRateLimit.Window)
	cfg.AuthRateLimit.TrustedProxies = envcfg.GetEnvStringList("AUTH_TRUSTED_PROXIES", cfg.AuthRateLimit.TrustedProxies)
	cfg.BcryptCost = envcfg.GetEnvPositiveInt("BCRYPT_COST", cfg.BcryptCost)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if len(c.JWT.Secret) == 0 {
		return ErrMissingJWTSecret
	}
	if len(c.JWT.Secret) < MinJWTSecretLength {
		return ErrWeakJWTSecret
	}

	switch c.Store.Driver {
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	case DriverMongo:
		if c.Store.MongoURI == "" {
			return errors.New("MONGO_URI is required for the mongo store")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		return errors.New("at least one CORS origin is required")
	}
	return nil
}
