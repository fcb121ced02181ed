// Package gcra implements the Generic Cell Rate Algorithm decision kernel:
// a pure function of (quota, prior state, arrival time, weight) that
// produces a decision and, for conforming requests, a new state — plus the
// atomic Cell that installs that kernel behind a compare-and-swap loop.
//
// Nothing in this package allocates or blocks; callers on the hot path
// never see anything heavier than a handful of unsigned comparisons and one
// CompareAndSwap.
package gcra

import (
	"sync/atomic"

	"github.com/jassus213/gcra-limiter/internal/nanos"
)

// Quota is the kernel's view of a rate limit: the emission interval T (time
// between replenishments), the burst size, and the derived delay variation
// tolerance Tau = T * Burst.
type Quota struct {
	T     nanos.Nanos
	Tau   nanos.Nanos
	Burst uint32
}

// Outcome classifies a Decision.
type Outcome uint8

const (
	// Conforming means the request is admitted now.
	Conforming Outcome = iota
	// NonConforming means the request is not admitted now but would be at
	// Earliest, assuming no other contender changes the cell first.
	NonConforming
	// Exceeds means the request's weight can never be admitted under this
	// quota, no matter how long the caller waits.
	Exceeds
)

// Snapshot is a read-only view of the state a Decision was reached from,
// sufficient to compute remaining burst capacity and time to full
// replenishment.
type Snapshot struct {
	Quota Quota
	TAT   nanos.Nanos
	Now   nanos.Nanos
}

// RemainingBurst returns the number of whole units that could additionally
// be admitted right now, given the state this snapshot describes.
func (s Snapshot) RemainingBurst() uint32 {
	used := s.TAT.Sub(s.Now)
	rem := s.Quota.Tau.Sub(used)
	return uint32(rem.Div(s.Quota.T))
}

// TimeToFull returns the time remaining until the bucket is fully
// replenished (remaining burst capacity equals the quota's full burst).
func (s Snapshot) TimeToFull() nanos.Nanos {
	return s.TAT.Sub(s.Now)
}

// Decision is the kernel's output.
type Decision struct {
	Outcome Outcome

	// NewTAT is the state to install; valid only when Outcome == Conforming.
	NewTAT nanos.Nanos

	// Earliest and Wait are valid only when Outcome == NonConforming.
	Earliest nanos.Nanos
	Wait     nanos.Nanos

	// Burst is valid only when Outcome == Exceeds: the maximum weight that
	// could ever conform under this quota.
	Burst uint32

	// Snapshot is valid for Conforming and NonConforming outcomes.
	Snapshot Snapshot
}

// Decide is the GCRA decision kernel. tatPrev is the cell's current
// theoretical arrival time (0 meaning "never used"), now is the arrival
// instant, and n is the request weight in cells (n >= 1).
//
// Decide has no side effects; it neither reads a clock nor touches shared
// state. Decide panics if n == 0 — that is a caller precondition violation,
// not a rate-limiting outcome.
func Decide(q Quota, tatPrev, now nanos.Nanos, n uint32) Decision {
	if n == 0 {
		panic("gcra: weight must be >= 1")
	}
	if n > q.Burst {
		return Decision{Outcome: Exceeds, Burst: q.Burst}
	}

	tat0 := nanos.Max2(tatPrev, now)
	tatNew := tat0.Add(q.T.Mul(uint64(n)))
	earliest := tatNew.Sub(q.Tau)

	if earliest <= now {
		return Decision{
			Outcome:  Conforming,
			NewTAT:   tatNew,
			Snapshot: Snapshot{Quota: q, TAT: tatNew, Now: now},
		}
	}

	return Decision{
		Outcome:  NonConforming,
		Earliest: earliest,
		Wait:     earliest.Sub(now),
		Snapshot: Snapshot{Quota: q, TAT: tat0, Now: now},
	}
}

// Cell is a single 64-bit atomic slot holding one GCRA state (the
// theoretical arrival time). It is the "atomic state cell" of spec §4.3:
// a wait-free-per-winner compare-and-swap loop around the pure kernel.
// The zero value is a valid, never-used cell.
type Cell struct {
	tat atomic.Uint64
}

// NewCell returns a Cell initialized to the given starting TAT. Passing 0
// produces a cell that behaves as "never used".
func NewCell(start nanos.Nanos) *Cell {
	c := &Cell{}
	c.tat.Store(uint64(start))
	return c
}

// CheckN runs the CAS loop of spec §4.3: load, decide, and — only for a
// conforming decision — attempt to install the new TAT, retrying on CAS
// failure. Negative and exceeds-capacity decisions never write: a rejected
// request must not advance the TAT, or repeated rejections would push the
// earliest retry further into the future than it should be.
func (c *Cell) CheckN(q Quota, now nanos.Nanos, n uint32) Decision {
	for {
		prev := nanos.Nanos(c.tat.Load())
		d := Decide(q, prev, now, n)
		if d.Outcome != Conforming {
			return d
		}
		if c.tat.CompareAndSwap(uint64(prev), uint64(d.NewTAT)) {
			return d
		}
		// Lost the race to another contender; re-read and retry. Each
		// retry re-evaluates against fresh state, so this converges in a
		// bounded number of iterations proportional to contention.
	}
}

// Peek returns the cell's current raw TAT without modifying it. Used by
// stores to implement RetainRecent (spec §4.4): a cell is idle and
// eligible for removal when its TAT is at or before now - tau.
func (c *Cell) Peek() nanos.Nanos {
	return nanos.Nanos(c.tat.Load())
}
