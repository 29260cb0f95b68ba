package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Name:             "test-circuit",
		MaxRequests:      1,
		Interval:         10 * time.Second,
		Timeout:          50 * time.Millisecond,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

func TestNew(t *testing.T) {
	cb := New(testConfig(), nil)

	assert.Equal(t, "test-circuit", cb.Name())
	assert.Equal(t, gobreaker.StateClosed, cb.State())
	assert.False(t, cb.IsOpen())
}

func TestDo(t *testing.T) {
	cb := New(testConfig(), nil)

	got, err := Do(cb, func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", got)

	boom := errors.New("boom")
	got, err = Do(cb, func() (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, got)
}

func TestCircuitBreaker_TripsOpenAndRecovers(t *testing.T) {
	cb := New(testConfig(), nil)
	boom := errors.New("boom")

	// 4 failures + 1 success = 80% >= 60% once MinRequests is reached.
	for i := 0; i < 4; i++ {
		_, err := cb.Execute(func() (any, error) { return nil, boom })
		require.ErrorIs(t, err, boom)
	}
	_, err := cb.Execute(func() (any, error) { return "ok", nil })
	require.NoError(t, err)
	_, err = cb.Execute(func() (any, error) { return nil, boom })
	require.ErrorIs(t, err, boom)

	require.True(t, cb.IsOpen())

	_, err = cb.Execute(func() (any, error) {
		t.Error("fn must not run while open")
		return nil, nil
	})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)

	time.Sleep(80 * time.Millisecond)

	_, err = cb.Execute(func() (any, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_ExpectedErrorsDoNotTrip(t *testing.T) {
	notFound := errors.New("not found")
	cb := New(testConfig(), func(err error) bool { return errors.Is(err, notFound) })

	for i := 0; i < 10; i++ {
		_, err := cb.Execute(func() (any, error) { return nil, notFound })
		assert.ErrorIs(t, err, notFound)
	}
	for i := 0; i < 10; i++ {
		_, err := cb.Execute(func() (any, error) { return nil, context.Canceled })
		assert.ErrorIs(t, err, context.Canceled)
	}

	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestStoreConfig(t *testing.T) {
	cfg := StoreConfig("postgres")

	assert.Equal(t, "postgres", cfg.Name)
	assert.Equal(t, 1.0, cfg.FailureThreshold)
	assert.Equal(t, uint32(5), cfg.MinRequests)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}
