// Package sched provides the debounce primitive used to coalesce bursts
// of marker and cursor events into a single recomputation.
//
// The pending invocation is modeled as an explicit cancellable Task
// rather than a bare timer id, so disposal and reconfiguration can
// deterministically cancel exactly one pending run.
package sched

import (
	"sync"
	"time"
)

// Task is a single cancellable scheduled invocation.
type Task struct {
	mu        sync.Mutex
	timer     *time.Timer
	cancelled bool
}

// NewTask schedules fn to run once after delay.
func NewTask(delay time.Duration, fn func()) *Task {
	if delay < 0 {
		delay = 0
	}
	t := &Task{}
	t.timer = time.AfterFunc(delay, fn)
	return t
}

// Cancel stops the task. It returns true if the call prevented the run;
// false if the task already ran or was already cancelled.
func (t *Task) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancelled {
		return false
	}
	t.cancelled = true
	return t.timer.Stop()
}

// Debouncer runs a function after a quiet period. Each Trigger cancels
// the prior pending task and schedules a new one, so the function fires
// at most once per quiet period of the configured delay.
type Debouncer struct {
	mu         sync.Mutex
	delay      time.Duration
	fn         func()
	pending    *Task
	generation uint64
}

// NewDebouncer creates a debouncer for fn with the given delay.
func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger schedules the function to run after the delay, cancelling any
// pending run. A stale timer callback that lost the race to Cancel is
// invalidated by the generation check and does nothing.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.generation++
	gen := d.generation

	if d.pending != nil {
		d.pending.Cancel()
	}

	d.pending = NewTask(d.delay, func() {
		d.mu.Lock()
		if d.generation != gen {
			d.mu.Unlock()
			return
		}
		d.pending = nil
		fn := d.fn
		d.mu.Unlock()

		if fn != nil {
			fn()
		}
	})
}

// Flush cancels any pending run and executes the function synchronously
// and immediately on the caller's goroutine.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	d.generation++
	if d.pending != nil {
		d.pending.Cancel()
		d.pending = nil
	}
	fn := d.fn
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Cancel cancels any pending run without executing it.
// It returns true if a pending run was cancelled.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.generation++
	if d.pending == nil {
		return false
	}
	cancelled := d.pending.Cancel()
	d.pending = nil
	return cancelled
}

// Pending returns true if a run is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Delay returns the configured quiet period.
func (d *Debouncer) Delay() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.delay
}

// SetDelay changes the quiet period. Any pending run under the old delay
// is cancelled, not fired; the next Trigger uses the new delay.
func (d *Debouncer) SetDelay(delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.generation++
	if d.pending != nil {
		d.pending.Cancel()
		d.pending = nil
	}
	d.delay = delay
}
