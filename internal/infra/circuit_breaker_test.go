package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream down")

func failing() error { return errUpstream }
func succeeding() error { return nil }

func TestCircuitBreaker_TripsAfterConsecutiveFailures(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 5, SuccessThreshold: 2, OpenTimeout: time.Minute})

	for i := 0; i < 4; i++ {
		err := cb.Execute(failing)
		require.ErrorIs(t, err, errUpstream)
		assert.Equal(t, CBClosed, cb.State())
	}

	require.ErrorIs(t, cb.Execute(failing), errUpstream)
	assert.Equal(t, CBOpen, cb.State())

	// Open breaker fast-fails without calling fn.
	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, SuccessThreshold: 1, OpenTimeout: time.Minute})

	require.Error(t, cb.Execute(failing))
	require.Error(t, cb.Execute(failing))
	require.NoError(t, cb.Execute(succeeding))
	require.Error(t, cb.Execute(failing))
	require.Error(t, cb.Execute(failing))
	assert.Equal(t, CBClosed, cb.State(), "success must reset the consecutive counter")
}

func TestCircuitBreaker_HalfOpenProbeAndClose(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 2, OpenTimeout: 10 * time.Millisecond})

	require.Error(t, cb.Execute(failing))
	require.Equal(t, CBOpen, cb.State())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	// First probe succeeds but the breaker needs two to close.
	require.NoError(t, cb.Execute(succeeding))
	assert.Equal(t, CBHalfOpen, cb.State())
	require.NoError(t, cb.Execute(succeeding))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 2, OpenTimeout: 10 * time.Millisecond})

	require.Error(t, cb.Execute(failing))
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	require.ErrorIs(t, cb.Execute(failing), errUpstream)
	assert.Equal(t, CBOpen, cb.State())
}
