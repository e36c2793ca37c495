// Package tick reports when a wall-clock interval has elapsed.
//
// Ticker is polled from loops that must not block: progress reporting in
// the samplers checks it once per sample. It reads the runtime's monotonic
// clock directly and keeps its state in atomics, so a poll costs a few
// nanoseconds and never touches the runtime timer heap.
package tick

import (
	"sync/atomic"
	"time"
	_ "unsafe" // Required for go:linkname
)

// nanotime returns the current monotonic time in nanoseconds.
//
//go:linkname nanotime runtime.nanotime
func nanotime() int64

// Ticker fires at most once per interval.
type Ticker struct {
	interval int64 // nanoseconds; <= 0 never fires
	start    int64
	lastTick atomic.Int64
}

// New creates a Ticker. A non-positive interval yields a Ticker that never
// fires, which lets callers disable progress output without a branch.
func New(interval time.Duration) *Ticker {
	now := nanotime()
	t := &Ticker{
		interval: int64(interval),
		start:    now,
	}
	t.lastTick.Store(now)
	return t
}

// Tick returns true if the interval has elapsed since the last tick.
//
// Uses a compare-and-swap so that concurrent pollers fire one tick between
// them.
func (t *Ticker) Tick() bool {
	if t.interval <= 0 {
		return false
	}

	now := nanotime()
	last := t.lastTick.Load()

	if now-last >= t.interval {
		return t.lastTick.CompareAndSwap(last, now)
	}
	return false
}

// Elapsed returns the time since the Ticker was created.
func (t *Ticker) Elapsed() time.Duration {
	return time.Duration(nanotime() - t.start)
}

// Interval returns the ticker's interval.
func (t *Ticker) Interval() time.Duration {
	return time.Duration(t.interval)
}
