// Package retry repeats an operation with exponential backoff and jitter.
// The server uses it to wait for its store at start-up, when the database
// container may still be booting.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"syscall"
	"time"
)

// Config holds the configuration for retry logic.
type Config struct {
	// MaxAttempts is the maximum number of attempts, the first included.
	MaxAttempts int

	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps the delay between retries.
	MaxDelay time.Duration

	// Multiplier grows the delay after each retry.
	Multiplier float64

	// JitterFraction is the fraction of delay added as random jitter (0.0 to 1.0).
	JitterFraction float64

	// Retryable classifies errors. IsRetryable is used when nil.
	Retryable func(error) bool
}

// DefaultConfig returns a default retry configuration.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   1 * time.Second,
		MaxDelay:       30 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// StoreConnectConfig waits up to about a minute for a store that is still
// starting.
func StoreConnectConfig() Config {
	return Config{
		MaxAttempts:    6,
		InitialDelay:   1 * time.Second,
		MaxDelay:       15 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// Do runs fn until it succeeds, returns a non-retryable error, the attempts
// run out or ctx is done. It returns nil on success and the last error
// otherwise.
func Do(ctx context.Context, cfg Config, fn func(ctx context.Context) error) error {
	retryable := cfg.Retryable
	if retryable == nil {
		retryable = IsRetryable
	}

	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			if attempt > 1 {
				slog.Info("operation succeeded after retry", slog.Int("attempt", attempt))
			}
			return nil
		}

		if ctx.Err() != nil {
			return fmt.Errorf("retry aborted: %w", lastErr)
		}
		if !retryable(lastErr) {
			slog.Warn("non-retryable error, aborting",
				slog.Int("attempt", attempt),
				slog.Any("error", lastErr))
			return lastErr
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		slog.Warn("operation failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.MaxAttempts),
			slog.Duration("delay", delay),
			slog.Any("error", lastErr))

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
		delay = addJitter(delay, cfg.JitterFraction)
	}

	return fmt.Errorf("max retry attempts (%d) exceeded: %w", cfg.MaxAttempts, lastErr)
}

// IsRetryable reports connection failures and per-attempt timeouts.
// Cancellation is final.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	// A single attempt ran out of time; the caller's context is checked separately.
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ETIMEDOUT) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH)
}

func addJitter(duration time.Duration, jitterFraction float64) time.Duration {
	if jitterFraction <= 0 {
		return duration
	}
	if jitterFraction > 1.0 {
		jitterFraction = 1.0
	}
	// #nosec G404 -- jitter does not need cryptographic randomness.
	jitter := time.Duration(rand.Float64() * float64(duration) * jitterFraction)
	return duration + jitter
}
