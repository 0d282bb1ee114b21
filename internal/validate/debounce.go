package validate

import (
	"sync"
	"time"
)

// DefaultQuiescence is the pause after the last content change before a
// validation pass runs.
const DefaultQuiescence = time.Second

// Debouncer coalesces bursts of triggers into a single deferred call.
// Each Trigger cancels and reschedules one pending timer, so at most one
// call runs per quiescence window.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given quiescence window.
// A non-positive delay falls back to DefaultQuiescence.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultQuiescence
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the quiescence window, replacing any call
// still pending.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels a pending call, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
