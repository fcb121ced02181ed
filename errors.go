package ratelimiter

import (
	"errors"
	"time"

	"github.com/jassus213/gcra-limiter/clock"
	"github.com/jassus213/gcra-limiter/internal/gcra"
	"github.com/jassus213/gcra-limiter/internal/nanos"
)

// ErrClockCalibration is returned by limiter constructors when a supplied
// Clock's Calibrate method (see clock.HighResolution) fails.
var ErrClockCalibration = errors.New("gcra: clock calibration failed")

// NotYetError reports that a request was not admitted now, but would
// conform if retried after RetryAfter. It is the Go rendering of spec
// §4.2's Negative decision.
type NotYetError struct {
	snapshot gcra.Snapshot
	earliest nanos.Nanos
}

// RetryAfter returns how long, from the instant the decision was made, the
// caller must wait before the same request would conform.
func (e *NotYetError) RetryAfter() time.Duration {
	return e.earliest.Sub(e.snapshot.Now).Duration()
}

// WaitTimeFrom returns how long to wait before retrying, measured from c's
// current reading rather than from the instant the decision was made —
// useful when a caller checks well after the decision (spec §4.5).
func (e *NotYetError) WaitTimeFrom(c clock.Clock) time.Duration {
	return e.earliest.Sub(c.Now()).Duration()
}

func (e *NotYetError) Error() string {
	return "gcra: not yet: retry after " + e.RetryAfter().String()
}

// RemainingBurst reports the burst capacity that was available at decision
// time.
func (e *NotYetError) RemainingBurst() uint32 { return e.snapshot.RemainingBurst() }

// InsufficientCapacityError reports that a request's weight can never
// conform under the quota it was checked against, regardless of how long
// the caller waits. It is the Go rendering of spec §4.2's
// CannotEverSucceed outcome.
type InsufficientCapacityError struct {
	// MaxBurst is the largest weight this quota could ever admit.
	MaxBurst uint32
}

func (e *InsufficientCapacityError) Error() string {
	return "gcra: requested weight exceeds maximum burst capacity"
}
