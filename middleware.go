package ratelimiter

import (
	"time"

	"github.com/jassus213/gcra-limiter/internal/gcra"
)

// StateSnapshot is the public view of the GCRA state a decision was
// reached from, exposed to Middleware implementations so they can report
// remaining capacity without reaching into the kernel themselves.
type StateSnapshot struct {
	snapshot gcra.Snapshot
}

// RemainingBurst returns the number of additional units that could be
// admitted right now under the quota this snapshot was taken against.
func (s StateSnapshot) RemainingBurst() uint32 { return s.snapshot.RemainingBurst() }

// TimeToFull returns how long until the bucket is fully replenished.
func (s StateSnapshot) TimeToFull() time.Duration { return s.snapshot.TimeToFull().Duration() }

// Middleware turns a raw GCRA decision into whatever payload T a caller's
// limiter should return. It is the Go generics rendering of the original
// associated-type "rate limiting middleware" pattern (spec §4.6, §9): T is
// fixed once per limiter at construction, so every Check/CheckKey call on
// that limiter returns the same concrete type without an interface
// assertion on the caller's part.
type Middleware[T any] interface {
	// Allow is called for a conforming request.
	Allow(key string, snapshot StateSnapshot) T
	// Disallow is called for a non-conforming request (never for one that
	// can never conform — that case always surfaces as
	// *InsufficientCapacityError instead, independent of middleware).
	Disallow(key string, snapshot StateSnapshot, err *NotYetError) T
}

// NoOpMiddleware returns exactly what the kernel decided, with no payload:
// a conforming Check returns (struct{}, nil), a non-conforming one returns
// (struct{}, *NotYetError). It is the zero-overhead choice for callers who
// only want the error. No constructor supplies a middleware by default;
// callers pass NoOpMiddleware{} explicitly.
type NoOpMiddleware struct{}

func (NoOpMiddleware) Allow(string, StateSnapshot) struct{} { return struct{}{} }
func (NoOpMiddleware) Disallow(string, StateSnapshot, *NotYetError) struct{} {
	return struct{}{}
}

// StateInfo is returned by StateInformationMiddleware: the decision outcome
// plus the snapshot it was computed from, for callers who want to surface
// remaining-capacity headers or metrics without a second lookup.
type StateInfo struct {
	Snapshot StateSnapshot
	Err      *NotYetError // nil when the request conformed
}

// StateInformationMiddleware returns a StateInfo on every call, conforming
// or not, so a caller (typically an HTTP middleware adapter) can always
// read remaining capacity regardless of outcome.
type StateInformationMiddleware struct{}

func (StateInformationMiddleware) Allow(_ string, s StateSnapshot) StateInfo {
	return StateInfo{Snapshot: s}
}

func (StateInformationMiddleware) Disallow(_ string, s StateSnapshot, err *NotYetError) StateInfo {
	return StateInfo{Snapshot: s, Err: err}
}
