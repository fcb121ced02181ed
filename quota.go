package ratelimiter

import (
	"errors"
	"fmt"
	"time"

	"github.com/jassus213/gcra-limiter/internal/gcra"
	"github.com/jassus213/gcra-limiter/internal/nanos"
)

// ErrQuotaConstruction is wrapped by every error a Quota constructor
// returns, so callers can test for "I built a bad quota" with errors.Is
// without matching on message text.
var ErrQuotaConstruction = errors.New("gcra: invalid quota")

// Quota describes a rate limit in the caller's own terms: replenish Burst
// units every Period, or replenish at a steady rate of T per unit with up
// to Burst units of slack. Internally it is always reduced to the kernel's
// (T, Tau, Burst) form (spec §3).
type Quota struct {
	inner gcra.Quota
}

// PerSecond returns a Quota admitting n requests per second, spread evenly
// (an emission interval of 1s/n) with a burst capacity of n.
func PerSecond(n uint32) (Quota, error) {
	return newQuota(n, time.Second)
}

// PerMinute returns a Quota admitting n requests per minute.
func PerMinute(n uint32) (Quota, error) {
	return newQuota(n, time.Minute)
}

// PerHour returns a Quota admitting n requests per hour.
func PerHour(n uint32) (Quota, error) {
	return newQuota(n, time.Hour)
}

// WithPeriod returns a Quota that replenishes one unit every period, with a
// burst capacity of 1. Call AllowBurst on the result to raise the burst
// capacity while keeping the same steady-state rate.
func WithPeriod(period time.Duration) (Quota, error) {
	return newQuota(1, period)
}

// AllowBurst returns a copy of q with its burst capacity raised to burst
// and its tolerance recomputed accordingly (Tau = T * burst); the emission
// interval T — and therefore the steady-state rate — is unchanged. burst
// must be >= 1.
func (q Quota) AllowBurst(burst uint32) (Quota, error) {
	if burst == 0 {
		return Quota{}, fmt.Errorf("%w: burst must be >= 1", ErrQuotaConstruction)
	}
	tau, overflow := q.inner.T.CheckedMul(uint64(burst))
	if overflow {
		return Quota{}, fmt.Errorf("%w: tolerance overflows 64 bits", ErrQuotaConstruction)
	}
	return Quota{inner: gcra.Quota{T: q.inner.T, Tau: tau, Burst: burst}}, nil
}

// MaxBurst reports the quota's burst capacity.
func (q Quota) MaxBurst() uint32 { return q.inner.Burst }

// EmissionInterval reports the steady-state time between unit
// replenishments.
func (q Quota) EmissionInterval() time.Duration { return q.inner.T.Duration() }

// newQuota builds the kernel (T, Tau, Burst) triple for "burst units every
// period" quotas (spec §3's "N per period P" and "one every P" forms
// share this constructor; WithPeriod just calls it with burst=1).
//
// A period so short relative to burst that T would compute to less than a
// nanosecond saturates T to 1ns instead of failing — matching
// original_source's own documented historical fix (a quota of "a very
// large number per second" is a legitimate, if extreme, request, not a
// construction error). Tolerance overflow, by contrast, is rejected: it
// means the caller asked for slack wider than 584 years, which is always a
// mistake, never a legitimate extreme.
func newQuota(burst uint32, period time.Duration) (Quota, error) {
	if burst == 0 {
		return Quota{}, fmt.Errorf("%w: burst must be >= 1", ErrQuotaConstruction)
	}
	if period <= 0 {
		return Quota{}, fmt.Errorf("%w: period must be > 0", ErrQuotaConstruction)
	}

	t := period.Nanoseconds() / int64(burst)
	if t < 1 {
		t = 1
	}
	tNanos := nanos.Nanos(t)

	tau, overflow := tNanos.CheckedMul(uint64(burst))
	if overflow {
		return Quota{}, fmt.Errorf("%w: tolerance overflows 64 bits", ErrQuotaConstruction)
	}

	return Quota{inner: gcra.Quota{T: tNanos, Tau: tau, Burst: burst}}, nil
}
