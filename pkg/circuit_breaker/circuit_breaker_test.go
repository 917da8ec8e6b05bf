package circuit_breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_circuitBreaker_Call(t *testing.T) {
	errService := errors.New("service error")
	ok := func() error { return nil }
	fail := func() error { return errService }

	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := New(10, 2*time.Second, 0.3, 2).(*circuitBreaker)
	cb.now = func() time.Time { return clock }

	for i := 0; i < 20; i++ {
		require.NoError(t, cb.Call(ok))
	}
	require.Equal(t, Closed, cb.State())

	// 3 of the last 10 calls failing trips the breaker
	require.ErrorIs(t, cb.Call(fail), errService)
	require.ErrorIs(t, cb.Call(fail), errService)
	require.Equal(t, Closed, cb.State())
	require.ErrorIs(t, cb.Call(fail), errService)
	require.Equal(t, Open, cb.State())

	called := false
	require.ErrorIs(t, cb.Call(func() error { called = true; return nil }), ErrOpenCB)
	require.False(t, called)

	// trial call after the timeout fails: back to open
	clock = clock.Add(3 * time.Second)
	require.ErrorIs(t, cb.Call(fail), errService)
	require.Equal(t, Open, cb.State())

	// trial call succeeds, recovery needs two successes
	clock = clock.Add(3 * time.Second)
	require.NoError(t, cb.Call(ok))
	require.Equal(t, HalfOpen, cb.State())
	require.NoError(t, cb.Call(ok))
	require.Equal(t, Closed, cb.State())
}

func Test_circuitBreaker_Reset(t *testing.T) {
	cb := New(1, time.Hour, 1, 1)
	require.Error(t, cb.Call(func() error { return errors.New("boom") }))
	require.Equal(t, Open, cb.State())
	cb.Reset()
	require.Equal(t, Closed, cb.State())
	require.NoError(t, cb.Call(func() error { return nil }))
}
