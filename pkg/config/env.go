// Package config provides typed readers for environment variables.
// Every reader falls back to a default when the variable is unset, and logs a
// warning through slog when a value is present but unusable.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the value of key, or defaultValue when unset or empty.
//
// Example:
//
//	addr := GetEnvString("HTTP_ADDR", ":8080")
func GetEnvString(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt returns key parsed as an integer.
func GetEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		warnInvalid(key, valueStr, strconv.Itoa(defaultValue), err)
		return defaultValue
	}
	return value
}

// GetEnvPositiveInt is GetEnvInt restricted to values greater than zero.
//
// Example:
//
//	maxOpen := GetEnvPositiveInt("DB_MAX_OPEN_CONNS", 25)
func GetEnvPositiveInt(key string, defaultValue int) int {
	value := GetEnvInt(key, defaultValue)
	if value <= 0 {
		warnInvalid(key, os.Getenv(key), strconv.Itoa(defaultValue), nil)
		return defaultValue
	}
	return value
}

// GetEnvBool returns key parsed with strconv.ParseBool
// ("1", "t", "true", "0", "f", "false" and their upper-case forms).
func GetEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		warnInvalid(key, valueStr, strconv.FormatBool(defaultValue), err)
		return defaultValue
	}
	return value
}

// GetEnvDuration returns key parsed by time.ParseDuration (e.g. "30s", "1h30m").
// Non-positive durations are rejected.
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil || value <= 0 {
		warnInvalid(key, valueStr, defaultValue.String(), err)
		return defaultValue
	}
	return value
}

// GetEnvStringList returns a comma-separated list with whitespace trimmed and
// empty items dropped. A variable holding only separators yields defaultValue.
//
// Example:
//
//	// CORS_ALLOWED_ORIGINS="http://localhost:4200, http://localhost"
//	origins := GetEnvStringList("CORS_ALLOWED_ORIGINS", nil)
//	// ["http://localhost:4200", "http://localhost"]
func GetEnvStringList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}

func warnInvalid(key, value, defaultValue string, err error) {
	attrs := []any{
		slog.String("key", key),
		slog.String("value", value),
		slog.String("default", defaultValue),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	slog.Warn("invalid value for environment variable, using default", attrs...)
}
