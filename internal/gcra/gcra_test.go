package gcra

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jassus213/gcra-limiter/internal/nanos"
)

func testQuota(perSecond uint32) Quota {
	t := nanos.Nanos(1_000_000_000 / uint64(perSecond))
	return Quota{T: t, Tau: t.Mul(uint64(perSecond)), Burst: perSecond}
}

func TestDecideFirstRequestConforms(t *testing.T) {
	q := testQuota(1)
	d := Decide(q, 0, 0, 1)
	assert.Equal(t, Conforming, d.Outcome)
	assert.Equal(t, q.T, d.NewTAT)
}

func TestDecideBurstThenThrottle(t *testing.T) {
	q := testQuota(5) // burst 5, t = 200ms
	var tat nanos.Nanos
	now := nanos.Nanos(0)

	for i := 0; i < 5; i++ {
		d := Decide(q, tat, now, 1)
		require.Equal(t, Conforming, d.Outcome, "request %d should conform within burst", i)
		tat = d.NewTAT
	}

	d := Decide(q, tat, now, 1)
	assert.Equal(t, NonConforming, d.Outcome)
	assert.True(t, d.Wait > 0)
}

func TestDecideWeightExceedsBurst(t *testing.T) {
	q := testQuota(5)
	d := Decide(q, 0, 0, 6)
	assert.Equal(t, Exceeds, d.Outcome)
	assert.Equal(t, uint32(5), d.Burst)
}

func TestDecidePanicsOnZeroWeight(t *testing.T) {
	q := testQuota(5)
	assert.Panics(t, func() { Decide(q, 0, 0, 0) })
}

func TestDecideReplenishesOverTime(t *testing.T) {
	q := testQuota(1) // t = 1s
	d := Decide(q, 0, 0, 1)
	require.Equal(t, Conforming, d.Outcome)

	// Immediately retrying fails: only one unit of burst, not replenished yet.
	d2 := Decide(q, d.NewTAT, nanos.Nanos(500_000_000), 1)
	assert.Equal(t, NonConforming, d2.Outcome)

	// After a full interval, it conforms again.
	d3 := Decide(q, d.NewTAT, nanos.Nanos(1_000_000_000), 1)
	assert.Equal(t, Conforming, d3.Outcome)
}

func TestSnapshotRemainingBurstAndTimeToFull(t *testing.T) {
	q := testQuota(5)
	d := Decide(q, 0, 0, 3)
	require.Equal(t, Conforming, d.Outcome)

	snap := d.Snapshot
	assert.Equal(t, uint32(2), snap.RemainingBurst())
	assert.Equal(t, q.T.Mul(3), snap.TimeToFull())
}

func TestCellRejectsWithoutMutatingState(t *testing.T) {
	q := testQuota(1)
	c := &Cell{}

	d := c.CheckN(q, 0, 1)
	require.Equal(t, Conforming, d.Outcome)
	before := c.Peek()

	rejected := c.CheckN(q, 0, 1)
	assert.Equal(t, NonConforming, rejected.Outcome)
	assert.Equal(t, before, c.Peek(), "a rejected request must not advance the cell's TAT")
}

func TestCellConcurrentCASConverges(t *testing.T) {
	q := testQuota(1000) // generous burst so most of N goroutines conform
	c := &Cell{}

	const n = 200
	var wg sync.WaitGroup
	var admitted atomic.Int64
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			d := c.CheckN(q, 0, 1)
			if d.Outcome == Conforming {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(n), admitted.Load(), "burst is large enough that every request should conform")
}

func TestCellPeekReflectsInstalledState(t *testing.T) {
	q := testQuota(1)
	c := &Cell{}
	assert.Equal(t, nanos.Nanos(0), c.Peek())

	d := c.CheckN(q, 0, 1)
	assert.Equal(t, d.NewTAT, c.Peek())
}
