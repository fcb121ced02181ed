package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jassus213/gcra-limiter/clock"
)

func TestNotYetErrorWaitTimeFromReflectsElapsedTime(t *testing.T) {
	fake := clock.NewFake()
	quota, err := PerSecond(1)
	require.NoError(t, err)

	limiter, err := NewDirect(quota, NoOpMiddleware{}, WithClock(fake))
	require.NoError(t, err)

	_, err = limiter.Check()
	require.NoError(t, err)

	_, err = limiter.Check()
	var notYet *NotYetError
	require.ErrorAs(t, err, &notYet)

	full := notYet.RetryAfter()
	fake.Advance(full / 2)
	remaining := notYet.WaitTimeFrom(fake)

	assert.True(t, remaining > 0 && remaining < full)
}

func TestNotYetErrorWaitTimeFromClampsAtZeroOncePassed(t *testing.T) {
	fake := clock.NewFake()
	quota, err := PerSecond(1)
	require.NoError(t, err)

	limiter, err := NewDirect(quota, NoOpMiddleware{}, WithClock(fake))
	require.NoError(t, err)

	_, err = limiter.Check()
	require.NoError(t, err)

	_, err = limiter.Check()
	var notYet *NotYetError
	require.ErrorAs(t, err, &notYet)

	fake.Advance(10 * time.Second)
	assert.Equal(t, time.Duration(0), notYet.WaitTimeFrom(fake))
}

func TestInsufficientCapacityErrorMessage(t *testing.T) {
	err := &InsufficientCapacityError{MaxBurst: 3}
	assert.Contains(t, err.Error(), "exceeds maximum burst")
}
