package hal

import (
	"sync"
	"time"
)

// maxFrameDelta bounds a single frame so a stalled host does not fling the simulation.
const maxFrameDelta = 250 * time.Millisecond

type hostClock struct {
	mu  sync.Mutex
	cur Frame
}

func (c *hostClock) Frame() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur
}

func (c *hostClock) advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	if d > maxFrameDelta {
		d = maxFrameDelta
	}
	c.mu.Lock()
	c.cur.Seq++
	c.cur.Delta = d
	c.mu.Unlock()
}

// Wall measures real frame durations for hosts that are not driven at a fixed rate.
type Wall struct {
	last time.Time
}

// Lap returns the time since the previous Lap (zero on the first call).
func (w *Wall) Lap() time.Duration {
	now := time.Now()
	if w.last.IsZero() {
		w.last = now
		return 0
	}
	d := now.Sub(w.last)
	w.last = now
	return d
}
