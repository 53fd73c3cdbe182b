package watch

import (
	"sync"
	"time"
)

// debouncer runs fn once the window passes with no further triggers.
// Calls to fn never overlap; a trigger that fires while fn is running
// waits for it to return.
type debouncer struct {
	window time.Duration
	fn     func()

	mu    sync.Mutex
	timer *time.Timer

	running sync.Mutex
}

func newDebouncer(window time.Duration, fn func()) *debouncer {
	return &debouncer{window: window, fn: fn}
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *debouncer) fire() {
	d.running.Lock()
	defer d.running.Unlock()
	d.fn()
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
}
