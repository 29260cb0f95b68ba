package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML overlay referenced by CONFIG_FILE.
// Zero values leave the defaults untouched; environment variables still win.
type fileConfig struct {
	Server struct {
		Addr    string `yaml:"addr"`
		Version string `yaml:"version"`
	} `yaml:"server"`
	JWT struct {
		SecretEnv string        `yaml:"secret_env"`
		Issuer    string        `yaml:"issuer"`
		TTL       time.Duration `yaml:"ttl"`
	} `yaml:"jwt"`
	Cookie struct {
		Secure *bool `yaml:"secure"`
	} `yaml:"cookie"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
		AllowedMethods []string `yaml:"allowed_methods"`
		AllowedHeaders []string `yaml:"allowed_headers"`
		MaxAge         int      `yaml:"max_age"`
	} `yaml:"cors"`
	Store struct {
		Driver        string `yaml:"driver"`
		MongoDatabase string `yaml:"mongo_database"`
		Pool          struct {
			MaxOpenConns    int           `yaml:"max_open_conns"`
			MaxIdleConns    int           `yaml:"max_idle_conns"`
			ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
			ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
		} `yaml:"pool"`
	} `yaml:"store"`
	AuthRateLimit struct {
		Limit          int           `yaml:"limit"`
		Window         time.Duration `yaml:"window"`
		TrustedProxies []string      `yaml:"trusted_proxies"`
	} `yaml:"auth_rate_limit"`
	BcryptCost int `yaml:"bcrypt_cost"`
}

// loadFile reads the YAML overlay at path.
// The path comes from the process environment, not from user input.
func loadFile(path string) (*fileConfig, error) {
	// #nosec G304 -- path is operator supplied via CONFIG_FILE
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &fc, nil
}

// apply copies every non-zero value of the overlay into c.
func (fc *fileConfig) apply(c *Config) {
	setString(&c.Addr, fc.Server.Addr)
	setString(&c.Version, fc.Server.Version)

	setString(&c.JWT.SecretEnv, fc.JWT.SecretEnv)
	setString(&c.JWT.Issuer, fc.JWT.Issuer)
	setPositive(&c.JWT.TTL, fc.JWT.TTL)

	if fc.Cookie.Secure != nil {
		c.Cookie.Secure = *fc.Cookie.Secure
	}

	setList(&c.CORS.AllowedOrigins, fc.CORS.AllowedOrigins)
	setList(&c.CORS.AllowedMethods, fc.CORS.AllowedMethods)
	setList(&c.CORS.AllowedHeaders, fc.CORS.AllowedHeaders)
	setPositive(&c.CORS.MaxAge, fc.CORS.MaxAge)

	setString(&c.Store.Driver, fc.Store.Driver)
	setString(&c.Store.MongoDatabase, fc.Store.MongoDatabase)
	setPositive(&c.Store.Pool.MaxOpenConns, fc.Store.Pool.MaxOpenConns)
	setPositive(&c.Store.Pool.MaxIdleConns, fc.Store.Pool.MaxIdleConns)
	setPositive(&c.Store.Pool.ConnMaxLifetime, fc.Store.Pool.ConnMaxLifetime)
	setPositive(&c.Store.Pool.ConnMaxIdleTime, fc.Store.Pool.ConnMaxIdleTime)

	setPositive(&c.AuthRateLimit.Limit, fc.AuthRateLimit.Limit)
	setPositive(&c.AuthRateLimit.Window, fc.AuthRateLimit.Window)
	setList(&c.AuthRateLimit.TrustedProxies, fc.AuthRateLimit.TrustedProxies)
	setPositive(&c.BcryptCost, fc.BcryptCost)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setList(dst *[]string, v []string) {
	if len(v) > 0 {
		*dst = v
	}
}

func setPositive[T int | time.Duration](dst *T, v T) {
	if v > 0 {
		*dst = v
	}
}
