package season

import (
	"sync"
	"time"
)

// Debouncer runs the most recently scheduled task once the delay passes
// without another Schedule call.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	task  func()
	gen   uint64
}

// NewDebouncer constructs a debouncer with the given quiet window.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule replaces any pending task with task and restarts the window.
func (d *Debouncer) Schedule(task func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.task = task
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Cancel drops the pending task. It reports whether one was pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	pending := d.task != nil
	d.stopLocked()
	return pending
}

// Flush runs the pending task now on the caller's goroutine. It reports
// whether a task ran.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	task := d.task
	d.stopLocked()
	d.mu.Unlock()

	if task == nil {
		return false
	}
	task()
	return true
}

// Pending reports whether a task is waiting for its window to pass.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.task != nil
}

// stopLocked stops the timer and invalidates any callback already in flight.
func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.task = nil
	d.gen++
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.task == nil {
		d.mu.Unlock()
		return
	}
	task := d.task
	d.task = nil
	d.timer = nil
	d.mu.Unlock()

	task()
}
