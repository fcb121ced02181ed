package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jassus213/gcra-limiter/internal/gcra"
	"github.com/jassus213/gcra-limiter/internal/nanos"
)

func testQuota() gcra.Quota {
	t := nanos.Nanos(1_000_000_000)
	return gcra.Quota{T: t, Tau: t, Burst: 1}
}

// variants exercises both KeyedStore implementations against the same
// contract: idempotent creation, capacity limits, and (for the Shrinkable
// ones) idle-key collection.
func variants() map[string]func() KeyedStore {
	return map[string]func() KeyedStore{
		"Sharded": func() KeyedStore { return NewSharded(4) },
		"Coarse":  func() KeyedStore { return NewCoarse() },
	}
}

func TestCellCreatesOnFirstUseAndReusesAfter(t *testing.T) {
	for name, newStore := range variants() {
		t.Run(name, func(t *testing.T) {
			s := newStore()
			a, err := s.Cell("k")
			require.NoError(t, err)
			b, err := s.Cell("k")
			require.NoError(t, err)
			assert.Same(t, a, b)
			assert.Equal(t, 1, s.Len())
			assert.False(t, s.IsEmpty())
		})
	}
}

func TestCellConcurrentFirstUseSharesOneCell(t *testing.T) {
	for name, newStore := range variants() {
		t.Run(name, func(t *testing.T) {
			s := newStore()
			const n = 50
			cells := make([]interface{ Peek() nanos.Nanos }, n)
			var wg sync.WaitGroup
			wg.Add(n)
			for i := 0; i < n; i++ {
				go func(i int) {
					defer wg.Done()
					c, err := s.Cell("shared")
					require.NoError(t, err)
					cells[i] = c
				}(i)
			}
			wg.Wait()
			for i := 1; i < n; i++ {
				assert.Same(t, cells[0], cells[i])
			}
			assert.Equal(t, 1, s.Len())
		})
	}
}

func TestWithMaxKeysRejectsNewKeysOnceFull(t *testing.T) {
	s := NewSharded(4, WithMaxKeys(2))
	_, err := s.Cell("a")
	require.NoError(t, err)
	_, err = s.Cell("b")
	require.NoError(t, err)

	_, err = s.Cell("c")
	assert.ErrorIs(t, err, ErrCapacityExhausted)

	// An existing key is always reachable even once the store is "full".
	_, err = s.Cell("a")
	assert.NoError(t, err)
}

func TestWithCoarseMaxKeysRejectsNewKeysOnceFull(t *testing.T) {
	s := NewCoarse(WithCoarseMaxKeys(1))
	_, err := s.Cell("a")
	require.NoError(t, err)

	_, err = s.Cell("b")
	assert.ErrorIs(t, err, ErrCapacityExhausted)
}

func TestRetainRecentRemovesOnlyIdleKeys(t *testing.T) {
	for name, newStore := range variants() {
		t.Run(name, func(t *testing.T) {
			s := newStore().(Shrinkable)

			idle, err := s.(KeyedStore).Cell("idle")
			require.NoError(t, err)
			idle.CheckN(testQuota(), 0, 1) // TAT = 1s, will be at-or-before now-tau

			fresh, err := s.(KeyedStore).Cell("fresh")
			require.NoError(t, err)
			fresh.CheckN(testQuota(), nanos.Nanos(1_000_000_000), 1) // TAT = 2s

			now := nanos.Nanos(2_000_000_000)
			removed := s.RetainRecent(now, testQuota().Tau)
			assert.Equal(t, 1, removed)
			assert.Equal(t, 1, s.(KeyedStore).Len())
		})
	}
}
