package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jassus213/gcra-limiter/clock"
	"github.com/jassus213/gcra-limiter/store"
)

func TestKeyedLimiterIsolatesBudgetsPerKey(t *testing.T) {
	fake := clock.NewFake()
	quota, err := PerSecond(1)
	require.NoError(t, err)

	limiter, err := NewKeyed(quota, NoOpMiddleware{}, WithClock(fake))
	require.NoError(t, err)

	_, err = limiter.CheckKey("alice")
	require.NoError(t, err)

	// Bob has never been seen; his budget must be independent of Alice's.
	_, err = limiter.CheckKey("bob")
	require.NoError(t, err)

	// Alice is now over budget.
	_, err = limiter.CheckKey("alice")
	require.Error(t, err)
}

func TestKeyedLimiterLenAndIsEmpty(t *testing.T) {
	quota, err := PerSecond(5)
	require.NoError(t, err)
	limiter, err := NewKeyed(quota, NoOpMiddleware{})
	require.NoError(t, err)

	assert.True(t, limiter.IsEmpty())

	_, err = limiter.CheckKey("a")
	require.NoError(t, err)
	assert.Equal(t, 1, limiter.Len())
	assert.False(t, limiter.IsEmpty())
}

func TestKeyedLimiterRetainRecentCollectsIdleKeys(t *testing.T) {
	fake := clock.NewFake()
	quota, err := PerSecond(1)
	require.NoError(t, err)

	limiter, err := NewKeyed(quota, NoOpMiddleware{}, WithClock(fake))
	require.NoError(t, err)

	_, err = limiter.CheckKey("idle")
	require.NoError(t, err)

	fake.Advance(2 * time.Second) // fully replenished and untouched since

	removed, err := limiter.RetainRecent()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.True(t, limiter.IsEmpty())
}

func TestKeyedLimiterStoreCapacityExhaustedSurfacesUnwrapped(t *testing.T) {
	quota, err := PerSecond(1)
	require.NoError(t, err)

	limiter, err := NewKeyed(quota, NoOpMiddleware{}, WithStore(store.NewSharded(1, store.WithMaxKeys(1))))
	require.NoError(t, err)

	_, err = limiter.CheckKey("a")
	require.NoError(t, err)

	_, err = limiter.CheckKey("b")
	assert.ErrorIs(t, err, store.ErrCapacityExhausted)
}
