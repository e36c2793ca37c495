package tick_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/randomizedcoder/static-vs-dynamic/internal/tick"
)

func TestTicker_FiresAfterInterval(t *testing.T) {
	tk := tick.New(10 * time.Millisecond)

	assert.False(t, tk.Tick(), "expected no tick immediately after creation")

	time.Sleep(15 * time.Millisecond)
	assert.True(t, tk.Tick(), "expected tick after interval elapsed")
	assert.False(t, tk.Tick(), "expected no tick immediately after a tick")
}

func TestTicker_Disabled(t *testing.T) {
	tk := tick.New(0)
	time.Sleep(time.Millisecond)
	assert.False(t, tk.Tick())
	assert.Zero(t, tk.Interval())
}

func TestTicker_Elapsed(t *testing.T) {
	tk := tick.New(time.Hour)
	time.Sleep(5 * time.Millisecond)

	assert.GreaterOrEqual(t, tk.Elapsed(), 5*time.Millisecond)
	assert.Equal(t, time.Hour, tk.Interval())
}

// TestTicker_ConcurrentSingleFire checks that concurrent pollers share
// one tick per interval.
func TestTicker_ConcurrentSingleFire(t *testing.T) {
	tk := tick.New(20 * time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	var fired atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tk.Tick() {
				fired.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), fired.Load())
}
