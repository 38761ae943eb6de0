package caption

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period edits must leave before a render.
const DefaultDebounce = 200 * time.Millisecond

// Debouncer runs fn once activity has been quiet for the wait period. Every
// Trigger restarts the wait; only the last one in a burst fires.
type Debouncer struct {
	wait time.Duration
	fn   func()

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

func NewDebouncer(wait time.Duration, fn func()) *Debouncer {
	return &Debouncer{wait: wait, fn: fn}
}

func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, d.fn)
}

// Flush cancels a pending call and runs fn right away. It reports whether a
// call was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	pending := d.timer != nil && d.timer.Stop()
	d.timer = nil
	stopped := d.stopped
	d.mu.Unlock()

	if pending && !stopped {
		d.fn()
	}
	return pending
}

// Stop drops any pending call; later Triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
