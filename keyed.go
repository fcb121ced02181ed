package ratelimiter

import (
	"fmt"

	"github.com/jassus213/gcra-limiter/clock"
	"github.com/jassus213/gcra-limiter/internal/gcra"
	"github.com/jassus213/gcra-limiter/store"
)

// KeyedLimiter enforces one Quota independently per key — one budget per
// API client, per tenant, per IP (spec §4.4). Cells are created lazily and
// idempotently on first use of a key.
type KeyedLimiter[T any] struct {
	quota      gcra.Quota
	store      store.KeyedStore
	clock      clock.Clock
	logger     Logger
	middleware Middleware[T]
}

// NewKeyed constructs a KeyedLimiter enforcing quota per key, backed by the
// store supplied via WithStore (store.NewSharded(0) by default).
func NewKeyed[T any](quota Quota, middleware Middleware[T], opts ...Option) (*KeyedLimiter[T], error) {
	cfg := newConfig(opts...)
	if err := cfg.calibrateClock(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClockCalibration, err)
	}
	return &KeyedLimiter[T]{
		quota:      quota.inner,
		store:      cfg.store,
		clock:      cfg.clock,
		logger:     cfg.logger,
		middleware: middleware,
	}, nil
}

// CheckKey is equivalent to CheckKeyN(key, 1).
func (l *KeyedLimiter[T]) CheckKey(key string) (T, error) {
	return l.CheckKeyN(key, 1)
}

// CheckKeyN checks whether n units conform to the quota for key right now.
// See DirectLimiter.CheckN for the outcome/error shape; the only addition
// here is that the underlying store can itself refuse to create a cell for
// a genuinely new key (store.ErrCapacityExhausted), which CheckKeyN
// surfaces unwrapped — it is not a rate-limiting decision, it's a resource
// limit on the limiter's own bookkeeping.
func (l *KeyedLimiter[T]) CheckKeyN(key string, n uint32) (T, error) {
	var zero T
	if n == 0 {
		panic("ratelimiter: n must be >= 1")
	}

	cell, err := l.store.Cell(key)
	if err != nil {
		l.logger.Errorf("ratelimiter: store rejected key %q: %v", key, err)
		return zero, err
	}

	now := l.clock.Now()
	d := cell.CheckN(l.quota, now, n)

	switch d.Outcome {
	case gcra.Conforming:
		snap := StateSnapshot{snapshot: d.Snapshot}
		l.logger.Debugf("ratelimiter: admitted key=%q n=%d remaining=%d", key, n, snap.RemainingBurst())
		return l.middleware.Allow(key, snap), nil
	case gcra.NonConforming:
		snap := StateSnapshot{snapshot: d.Snapshot}
		cerr := &NotYetError{snapshot: d.Snapshot, earliest: d.Earliest}
		l.logger.Debugf("ratelimiter: rejected key=%q n=%d retry_after=%s", key, n, cerr.RetryAfter())
		return l.middleware.Disallow(key, snap, cerr), cerr
	default: // gcra.Exceeds
		l.logger.Errorf("ratelimiter: key=%q n=%d exceeds max burst=%d", key, n, d.Burst)
		return zero, &InsufficientCapacityError{MaxBurst: d.Burst}
	}
}

// Len reports the number of distinct keys currently tracked.
func (l *KeyedLimiter[T]) Len() int { return l.store.Len() }

// IsEmpty reports whether Len() == 0.
func (l *KeyedLimiter[T]) IsEmpty() bool { return l.store.IsEmpty() }

// RetainRecent garbage-collects idle keys — those fully replenished and
// untouched since — from the underlying store, and reports how many were
// removed. It returns an error if the store doesn't support shrinking
// (store.Coarse and store.Sharded both do).
func (l *KeyedLimiter[T]) RetainRecent() (int, error) {
	shrinkable, ok := l.store.(store.Shrinkable)
	if !ok {
		return 0, fmt.Errorf("ratelimiter: store %T does not support RetainRecent", l.store)
	}
	now := l.clock.Now()
	return shrinkable.RetainRecent(now, l.quota.Tau), nil
}
