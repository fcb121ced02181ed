package store

import (
	"sync"

	"github.com/jassus213/gcra-limiter/internal/gcra"
	"github.com/jassus213/gcra-limiter/internal/nanos"
)

// Coarse is the single-locked keyed store variant (spec §3, §4.4): one
// mutex guarding one map. It exists for environments where a sharded map's
// extra bookkeeping isn't worth it — no_std-ish embeddings, small key
// spaces, or callers who want RetainRecent to observe a single consistent
// snapshot under one held lock. It offers no iteration API, and
// RetainRecent visits keys in Go's map order, which is not defined.
type Coarse struct {
	mu      sync.Mutex
	cells   map[string]*gcra.Cell
	maxKeys int64
}

// CoarseOption configures a Coarse store.
type CoarseOption func(*Coarse)

// WithCoarseMaxKeys caps the number of distinct keys, like WithMaxKeys does
// for Sharded.
func WithCoarseMaxKeys(n int64) CoarseOption {
	return func(c *Coarse) { c.maxKeys = n }
}

// NewCoarse returns an empty Coarse store.
func NewCoarse(opts ...CoarseOption) *Coarse {
	c := &Coarse{cells: make(map[string]*gcra.Cell)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cell implements KeyedStore. The map lock is held for the whole call,
// including on the fast path of an existing key — simpler than Sharded's
// double-checked locking, at the cost of serializing all lookups.
func (c *Coarse) Cell(key string) (*gcra.Cell, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cell, ok := c.cells[key]; ok {
		return cell, nil
	}
	if c.maxKeys > 0 && int64(len(c.cells)) >= c.maxKeys {
		return nil, ErrCapacityExhausted
	}
	cell := &gcra.Cell{}
	c.cells[key] = cell
	return cell, nil
}

// Len implements KeyedStore.
func (c *Coarse) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cells)
}

// IsEmpty implements KeyedStore.
func (c *Coarse) IsEmpty() bool {
	return c.Len() == 0
}

// RetainRecent implements Shrinkable.
func (c *Coarse) RetainRecent(now, tau nanos.Nanos) int {
	threshold := now.Sub(tau)
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, cell := range c.cells {
		if cell.Peek() <= threshold {
			delete(c.cells, key)
			removed++
		}
	}
	return removed
}
