// Package clock provides the pluggable time sources consumed by the GCRA
// kernel (spec §4.1). Every variant produces a Nanos instant relative to a
// fixed reference chosen at construction, monotonic non-decreasing across
// calls on the same instance — the kernel never cares which one it's
// talking to.
package clock

import (
	"context"
	"sync"
	"time"

	"github.com/jassus213/gcra-limiter/internal/nanos"
)

// Clock produces monotonic nanosecond instants relative to a reference
// fixed when the Clock was constructed.
type Clock interface {
	Now() nanos.Nanos
}

// Monotonic wraps the platform monotonic clock (time.Now's monotonic
// reading). It is the default clock for direct and keyed rate limiters.
type Monotonic struct {
	start time.Time
}

// NewMonotonic returns a Monotonic clock referenced to the instant of this
// call.
func NewMonotonic() *Monotonic {
	return &Monotonic{start: time.Now()}
}

// Now returns the elapsed time since the clock's reference instant.
func (m *Monotonic) Now() nanos.Nanos {
	return nanos.FromDuration(time.Since(m.start))
}

// HighResolution is a counter-backed clock that requires a one-time
// calibration before its readings are meaningful, mirroring the
// hardware-timestamp-counter clocks some GCRA implementations offer for
// lower per-call overhead than a syscall-backed monotonic clock. Go has no
// portable, allocation-free access to a raw hardware counter without cgo,
// so the calibration step here fixes a reference time.Time instant; reads
// are time.Since(reference), which is exactly what Monotonic does, but the
// explicit Calibrate step preserves the "calibrate once, up front" contract
// callers of the original API rely on (spec §6's calibrate_high_resolution_clock).
type HighResolution struct {
	once  sync.Once
	start time.Time
}

// NewHighResolution returns an uncalibrated high-resolution clock. The
// first call to Now (or an explicit Calibrate) performs the one-time setup.
func NewHighResolution() *HighResolution {
	return &HighResolution{}
}

// Calibrate performs the (here, effectively free) one-time calibration
// explicitly, so that the first rate-limiter construction using this clock
// is not the one paying for it. It is idempotent and safe to call from
// multiple goroutines.
func (h *HighResolution) Calibrate() error {
	h.once.Do(func() {
		h.start = time.Now()
	})
	return nil
}

// Now returns the elapsed time since calibration, calibrating lazily on
// first use if Calibrate was never called explicitly.
func (h *HighResolution) Now() nanos.Nanos {
	h.Calibrate()
	return nanos.FromDuration(time.Since(h.start))
}

// Upkeep is a clock whose reading is a plain atomic load of a value kept
// fresh by a background sampler the embedding application supplies (spec
// §4.1, §9). Upkeep itself never spawns goroutines; see StartUpkeepPump for
// an optional convenience pump.
type Upkeep struct {
	value cachedNanos
}

// NewUpkeep returns an Upkeep clock seeded at zero. Now returns 0 until the
// first Advance call.
func NewUpkeep() *Upkeep {
	return &Upkeep{}
}

// Now returns the most recently advanced value.
func (u *Upkeep) Now() nanos.Nanos {
	return u.value.load()
}

// Advance updates the cached value to candidate, but only if candidate is
// strictly greater than the current value — this is what keeps Upkeep
// monotonic even when its underlying source jitters backwards.
func (u *Upkeep) Advance(candidate nanos.Nanos) {
	u.value.advance(candidate)
}

// StartUpkeepPump is an optional convenience helper, not required for
// correctness (spec §9 leaves the sampler entirely to the embedder): it
// starts a goroutine that samples source and feeds Upkeep.Advance on a
// fixed interval until ctx is canceled. If the sampler stops — because ctx
// was canceled, or because the caller never started one — Upkeep's cached
// value simply freezes, and rate limiters built on it will admit up to one
// burst's worth of traffic and then stall; that is documented behavior, not
// a bug this package tries to detect.
func StartUpkeepPump(ctx context.Context, interval time.Duration, source Clock, target *Upkeep) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				target.Advance(source.Now())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Fake is a caller-controlled clock for tests: it only advances when told
// to. Clones share no state; a Fake is a pointer type, so every holder of
// the same *Fake observes the same time.
type Fake struct {
	value cachedNanos
}

// NewFake returns a Fake clock starting at instant 0.
func NewFake() *Fake {
	return &Fake{}
}

// Now returns the current fake instant.
func (f *Fake) Now() nanos.Nanos {
	return f.value.load()
}

// Advance moves the fake clock forward by d. Negative durations are
// ignored.
func (f *Fake) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	delta := nanos.FromDuration(d)
	for {
		prev := f.value.load()
		next := prev.Add(delta)
		if f.value.compareAndSwap(prev, next) {
			return
		}
	}
}

// SetNanos pins the fake clock to an absolute instant. Used by tests that
// want to set up a specific TAT relationship directly.
func (f *Fake) SetNanos(n nanos.Nanos) {
	for {
		prev := f.value.load()
		if f.value.compareAndSwap(prev, n) {
			return
		}
	}
}
