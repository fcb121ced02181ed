package ratelimiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jassus213/gcra-limiter/clock"
)

func TestSleepUntilReadyReturnsImmediatelyOnNilErr(t *testing.T) {
	err := SleepUntilReady(context.Background(), clock.NewMonotonic(), nil)
	assert.NoError(t, err)
}

func TestSleepUntilReadyPassesThroughUnrelatedErrors(t *testing.T) {
	other := &InsufficientCapacityError{MaxBurst: 1}
	err := SleepUntilReady(context.Background(), clock.NewMonotonic(), other)
	assert.Same(t, other, err)
}

func TestSleepUntilReadyBlocksUntilWaitElapses(t *testing.T) {
	fake := clock.NewFake()
	quota, err := PerSecond(1)
	require.NoError(t, err)

	limiter, err := NewDirect(quota, NoOpMiddleware{}, WithClock(fake))
	require.NoError(t, err)

	_, err = limiter.Check()
	require.NoError(t, err)

	_, checkErr := limiter.Check()
	require.Error(t, checkErr)

	done := make(chan struct{})
	go func() {
		SleepUntilReady(context.Background(), fake, checkErr)
		close(done)
	}()

	// The wait (1s) is read from fake once, then slept on a real timer.
	select {
	case <-done:
		t.Fatal("SleepUntilReady returned before the wait elapsed")
	case <-time.After(20 * time.Millisecond):
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("SleepUntilReady did not return once the wait elapsed")
	}
}

func TestSleepUntilReadyRespectsContextCancellation(t *testing.T) {
	fake := clock.NewFake()
	quota, err := PerSecond(1)
	require.NoError(t, err)

	limiter, err := NewDirect(quota, NoOpMiddleware{}, WithClock(fake))
	require.NoError(t, err)

	_, err = limiter.Check()
	require.NoError(t, err)
	_, checkErr := limiter.Check()
	require.Error(t, checkErr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = SleepUntilReady(ctx, fake, checkErr)
	assert.ErrorIs(t, err, context.Canceled)
}
