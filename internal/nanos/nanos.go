// Package nanos implements saturating nanosecond arithmetic on a 64-bit
// unsigned instant/duration representation, shared by the GCRA kernel and
// the clock implementations.
package nanos

import (
	"math"
	"math/bits"
	"time"
)

// Nanos is a count of nanoseconds, used both as a duration and as an
// instant relative to whatever reference point its owner chose. All
// arithmetic saturates at 0 and at Max (about 584 years) instead of
// wrapping, so a caller can never observe a clock running backwards
// through overflow.
type Nanos uint64

// Max is the largest representable Nanos value.
const Max = Nanos(math.MaxUint64)

// FromDuration converts a time.Duration to Nanos, clamping negative
// durations to zero.
func FromDuration(d time.Duration) Nanos {
	if d < 0 {
		return 0
	}
	return Nanos(d)
}

// Duration converts back to a time.Duration, saturating at
// time.Duration's own max if Nanos would overflow it.
func (n Nanos) Duration() time.Duration {
	if n > Nanos(math.MaxInt64) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(n)
}

// Add returns n+m, saturating at Max.
func (n Nanos) Add(m Nanos) Nanos {
	sum := n + m
	if sum < n {
		return Max
	}
	return sum
}

// Sub returns n-m, saturating at 0.
func (n Nanos) Sub(m Nanos) Nanos {
	if m > n {
		return 0
	}
	return n - m
}

// Mul returns n*m, saturating at Max on overflow.
func (n Nanos) Mul(m uint64) Nanos {
	if n == 0 || m == 0 {
		return 0
	}
	hi, lo := bits.Mul64(uint64(n), m)
	if hi != 0 || lo > uint64(Max) {
		return Max
	}
	return Nanos(lo)
}

// Div returns the integer quotient n/m. Division by zero returns Max.
func (n Nanos) Div(m Nanos) uint64 {
	if m == 0 {
		return uint64(Max)
	}
	return uint64(n) / uint64(m)
}

// Max2 returns the larger of a and b.
func Max2(a, b Nanos) Nanos {
	if a > b {
		return a
	}
	return b
}

// CheckedMul returns n*m and reports whether the multiplication overflowed
// 64 bits, instead of silently saturating. Used at Quota construction time,
// where an overflowing tolerance must be rejected rather than clamped.
func (n Nanos) CheckedMul(m uint64) (Nanos, bool) {
	if n == 0 || m == 0 {
		return 0, false
	}
	hi, lo := bits.Mul64(uint64(n), m)
	if hi != 0 {
		return 0, true
	}
	return Nanos(lo), false
}
