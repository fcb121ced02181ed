package store

import (
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"

	"github.com/jassus213/gcra-limiter/internal/gcra"
	"github.com/jassus213/gcra-limiter/internal/nanos"
)

// defaultShardCount is chosen the way most Go sharded-map implementations
// pick one: enough shards that lock contention under concurrent writers to
// distinct keys is rare, without so many that RetainRecent and Len sweeps
// get expensive. 64 is generous for typical per-process key-space sizes
// (API keys, client IDs); callers with unusual concurrency profiles can
// pass their own shard count via NewSharded.
const defaultShardCount = 64

// shard is one bucket of a Sharded store: an independently locked map.
type shard struct {
	mu    sync.RWMutex
	cells map[string]*gcra.Cell
}

// Sharded is the default keyed store: a fixed number of independently
// locked buckets, selected by hashing the key with xxhash. Lookups on an
// existing key only ever take a read lock on one shard; only first-use
// creation briefly takes that shard's write lock (spec §4.4).
type Sharded struct {
	shards  []*shard
	maxKeys int64
	count   atomic.Int64
}

// ShardedOption configures a Sharded store.
type ShardedOption func(*Sharded)

// WithMaxKeys caps the number of distinct keys a store will create. Once
// reached, Cell returns ErrCapacityExhausted for any key not already
// present. A limit of 0 (the default) means unbounded.
func WithMaxKeys(n int64) ShardedOption {
	return func(s *Sharded) { s.maxKeys = n }
}

// NewSharded returns a Sharded store with shardCount buckets. A shardCount
// of 0 selects defaultShardCount.
func NewSharded(shardCount int, opts ...ShardedOption) *Sharded {
	if shardCount <= 0 {
		shardCount = defaultShardCount
	}
	s := &Sharded{shards: make([]*shard, shardCount)}
	for i := range s.shards {
		s.shards[i] = &shard{cells: make(map[string]*gcra.Cell)}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sharded) shardFor(key string) *shard {
	h := xxhash.Sum64String(key)
	return s.shards[h%uint64(len(s.shards))]
}

// Cell implements KeyedStore.
func (s *Sharded) Cell(key string) (*gcra.Cell, error) {
	sh := s.shardFor(key)

	sh.mu.RLock()
	if c, ok := sh.cells[key]; ok {
		sh.mu.RUnlock()
		return c, nil
	}
	sh.mu.RUnlock()

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if c, ok := sh.cells[key]; ok {
		return c, nil
	}
	if s.maxKeys > 0 && s.count.Load() >= s.maxKeys {
		return nil, ErrCapacityExhausted
	}
	c := &gcra.Cell{}
	sh.cells[key] = c
	s.count.Add(1)
	return c, nil
}

// Len implements KeyedStore. It sums per-shard sizes under each shard's
// read lock, so it is exact only when the store is quiescent.
func (s *Sharded) Len() int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		total += len(sh.cells)
		sh.mu.RUnlock()
	}
	return total
}

// IsEmpty implements KeyedStore.
func (s *Sharded) IsEmpty() bool {
	return s.Len() == 0
}

// RetainRecent implements Shrinkable: a cell is idle and removed once its
// TAT is at or before now-tau, meaning it is fully replenished and has not
// been touched since. Concurrent Cell calls on a key mid-removal simply
// recreate the cell afresh, which is semantically equivalent to the key
// never having been removed at all — an idle cell and an absent cell look
// the same to callers.
func (s *Sharded) RetainRecent(now, tau nanos.Nanos) int {
	threshold := now.Sub(tau)
	removed := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		for key, c := range sh.cells {
			if c.Peek() <= threshold {
				delete(sh.cells, key)
				removed++
			}
		}
		sh.mu.Unlock()
	}
	s.count.Add(int64(-removed))
	return removed
}
