// Package circuitbreaker guards store calls with github.com/sony/gobreaker so a
// failing database is not hammered by every incoming request.
package circuitbreaker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config holds the configuration for a circuit breaker.
type Config struct {
	// Name is used in logs.
	Name string

	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32

	// Interval clears the closed-state counts; zero never clears them.
	Interval time.Duration

	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration

	// FailureThreshold is the failure ratio that trips the breaker, e.g. 0.6.
	FailureThreshold float64

	// MinRequests is the number of requests needed before the ratio is considered.
	MinRequests uint32
}

// DefaultConfig returns a general purpose configuration.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// StoreConfig opens after five consecutive store failures and probes again after 30s.
func StoreConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 1.0,
		MinRequests:      5,
	}
}

// CircuitBreaker wraps gobreaker.CircuitBreaker.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	name    string
}

// New creates a circuit breaker. Errors for which isExpected returns true are
// handed back to the caller without counting as failures; a nil isExpected
// counts every error except context cancellation.
func New(cfg Config, isExpected func(error) bool) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			return isExpected != nil && isExpected(err)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}

	return &CircuitBreaker{
		breaker: gobreaker.NewCircuitBreaker(settings),
		name:    cfg.Name,
	}
}

// Execute runs fn through the breaker. When the breaker is open it returns
// gobreaker.ErrOpenState without calling fn.
func (cb *CircuitBreaker) Execute(fn func() (any, error)) (any, error) {
	return cb.breaker.Execute(fn)
}

// Do is the typed form of Execute.
func Do[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	result, err := cb.breaker.Execute(func() (any, error) {
		return fn()
	})
	v, _ := result.(T)
	return v, err
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

// Name returns the name of the circuit breaker.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// IsOpen returns true if the circuit breaker is in the open state.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}
