package ratelimiter

import (
	"fmt"

	"github.com/jassus213/gcra-limiter/clock"
	"github.com/jassus213/gcra-limiter/internal/gcra"
)

// DirectLimiter enforces a single Quota against a single GCRA cell — the
// "global" shape of spec §4.3, for limits that aren't keyed per client
// (don't make more than N outbound calls a second, across the whole
// process).
type DirectLimiter[T any] struct {
	quota      gcra.Quota
	cell       *gcra.Cell
	clock      clock.Clock
	logger     Logger
	middleware Middleware[T]
}

// NewDirect constructs a DirectLimiter enforcing quota, rendering decisions
// through middleware. The zero value of Middleware[T] is never used — the
// caller always supplies one, typically NoOpMiddleware{} or
// StateInformationMiddleware{}.
func NewDirect[T any](quota Quota, middleware Middleware[T], opts ...Option) (*DirectLimiter[T], error) {
	cfg := newConfig(opts...)
	if err := cfg.calibrateClock(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClockCalibration, err)
	}
	return &DirectLimiter[T]{
		quota:      quota.inner,
		cell:       &gcra.Cell{},
		clock:      cfg.clock,
		logger:     cfg.logger,
		middleware: middleware,
	}, nil
}

// Check is equivalent to CheckN(1).
func (l *DirectLimiter[T]) Check() (T, error) {
	return l.CheckN(1)
}

// CheckN checks whether n units conform to the quota right now. A
// conforming request installs the new state and returns (middleware.Allow
// result, nil). A non-conforming one leaves state untouched and returns
// (middleware.Disallow result, *NotYetError). A request whose weight
// exceeds the quota's maximum burst can never conform and returns (zero
// value, *InsufficientCapacityError) regardless of middleware.
func (l *DirectLimiter[T]) CheckN(n uint32) (T, error) {
	var zero T
	if n == 0 {
		panic("ratelimiter: n must be >= 1")
	}

	now := l.clock.Now()
	d := l.cell.CheckN(l.quota, now, n)

	switch d.Outcome {
	case gcra.Conforming:
		snap := StateSnapshot{snapshot: d.Snapshot}
		l.logger.Debugf("ratelimiter: admitted n=%d remaining=%d", n, snap.RemainingBurst())
		return l.middleware.Allow("", snap), nil
	case gcra.NonConforming:
		snap := StateSnapshot{snapshot: d.Snapshot}
		err := &NotYetError{snapshot: d.Snapshot, earliest: d.Earliest}
		l.logger.Debugf("ratelimiter: rejected n=%d retry_after=%s", n, err.RetryAfter())
		return l.middleware.Disallow("", snap, err), err
	default: // gcra.Exceeds
		l.logger.Errorf("ratelimiter: n=%d exceeds max burst=%d", n, d.Burst)
		return zero, &InsufficientCapacityError{MaxBurst: d.Burst}
	}
}
