package clock

import (
	"sync/atomic"

	"github.com/jassus213/gcra-limiter/internal/nanos"
)

// cachedNanos is a single atomic nanos.Nanos word used by Upkeep and
// Fake. Upkeep moves it only forward (advance), driven by a background
// sampler; Fake updates it through compareAndSwap from explicit test
// calls, and Fake.SetNanos may move it to any instant, earlier included.
type cachedNanos struct {
	v atomic.Uint64
}

func (c *cachedNanos) load() nanos.Nanos {
	return nanos.Nanos(c.v.Load())
}

func (c *cachedNanos) compareAndSwap(old, new nanos.Nanos) bool {
	return c.v.CompareAndSwap(uint64(old), uint64(new))
}

// advance installs candidate only if it is strictly greater than the
// current value.
func (c *cachedNanos) advance(candidate nanos.Nanos) {
	for {
		cur := c.v.Load()
		if uint64(candidate) <= cur {
			return
		}
		if c.v.CompareAndSwap(cur, uint64(candidate)) {
			return
		}
	}
}
