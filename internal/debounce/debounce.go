// Package debounce provides the settle timer used by the cases search box
// and the remote-search selects: a rapidly changing value is reported only
// once it has stopped changing for a configured delay.
package debounce

import (
	"sync"
	"time"
)

// Debouncer settles string values. Set restarts the timer on every call
// (last write wins; intermediate values are dropped, never queued), and
// the callback fires with the final value once the input has been quiet
// for the configured delay. Stop cancels any pending settle so no callback
// can fire after disposal.
type Debouncer struct {
	mu       sync.Mutex
	delay    time.Duration
	timer    *time.Timer
	seq      uint64
	settling bool
	stopped  bool
	onSettle func(string)
}

// DefaultDelay mirrors the search inputs' settle delay.
const DefaultDelay = 500 * time.Millisecond

// New creates a debouncer that invokes onSettle with each settled value.
// The callback runs on the timer goroutine; consumers that touch UI state
// must hop back onto their event loop themselves.
func New(delay time.Duration, onSettle func(string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay, onSettle: onSettle}
}

// Set feeds a new raw value, cancelling any pending settle.
func (d *Debouncer) Set(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.settling = true
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(seq, value)
	})
}

func (d *Debouncer) fire(seq uint64, value string) {
	d.mu.Lock()
	// A newer Set superseded this timer between expiry and execution.
	if d.stopped || seq != d.seq {
		d.mu.Unlock()
		return
	}
	d.settling = false
	cb := d.onSettle
	d.mu.Unlock()

	if cb != nil {
		cb(value)
	}
}

// Settling reports whether a value is still waiting out the delay.
func (d *Debouncer) Settling() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.settling
}

// Stop cancels any pending settle. After Stop the debouncer emits nothing,
// including timers that already expired but have not run their callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.settling = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
