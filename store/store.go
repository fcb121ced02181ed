// Package store provides the keyed state stores of spec §4.4: concurrent
// maps from an arbitrary hashable key to a single GCRA cell, created
// lazily and idempotently on first use. Two variants are provided —
// Sharded (the default, for throughput) and Coarse (a single lock, for
// simpler embedding) — behind one interface so
// a KeyedLimiter can be parameterized over either.
package store

import (
	"errors"

	"github.com/jassus213/gcra-limiter/internal/gcra"
	"github.com/jassus213/gcra-limiter/internal/nanos"
)

// ErrCapacityExhausted is returned by Cell when a store has an upper bound
// on distinct keys (spec §7, StoreCapacityExhausted) and that bound has
// been reached for a genuinely new key.
var ErrCapacityExhausted = errors.New("gcra: store capacity exhausted")

// KeyedStore multiplexes many GCRA cells behind a hash key. Implementations
// must make cell creation idempotent under concurrent first-use: two
// goroutines racing to create the same new key must end up sharing one
// cell.
type KeyedStore interface {
	// Cell returns the cell for key, creating it (as a fresh, never-used
	// cell) if this is the first use of key.
	Cell(key string) (*gcra.Cell, error)

	// Len reports the number of distinct keys currently held. It may be
	// approximate under concurrent mutation but is exact once the store is
	// quiescent.
	Len() int

	// IsEmpty reports whether Len() == 0.
	IsEmpty() bool
}

// Shrinkable is implemented by stores that support garbage-collecting idle
// keys (spec §4.4, §8 scenario 6). Not every KeyedStore need implement it —
// shrinkability is a capability, not a type hierarchy.
type Shrinkable interface {
	KeyedStore
	// RetainRecent removes every key whose cell's TAT is at or before
	// now-tau (fully replenished and idle), and reports how many keys were
	// removed.
	RetainRecent(now, tau nanos.Nanos) int
}
