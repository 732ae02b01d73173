package debounce

import (
	"sync"
	"testing"
	"time"
)

// collector records settled values in order.
type collector struct {
	mu     sync.Mutex
	values []string
}

func (c *collector) add(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = append(c.values, v)
}

func (c *collector) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.values))
	copy(out, c.values)
	return out
}

func TestOnlyFinalValueSettles(t *testing.T) {
	c := &collector{}
	d := New(30*time.Millisecond, c.add)
	defer d.Stop()

	// Rapid keystrokes well within the delay.
	for _, v := range []string{"c", "co", "con", "cont", "contract"} {
		d.Set(v)
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(80 * time.Millisecond)

	got := c.snapshot()
	if len(got) != 1 || got[0] != "contract" {
		t.Fatalf("settled values = %v, want exactly [contract]", got)
	}
}

func TestSettlingFlag(t *testing.T) {
	d := New(50*time.Millisecond, func(string) {})
	defer d.Stop()

	if d.Settling() {
		t.Fatal("fresh debouncer should not be settling")
	}
	d.Set("x")
	if !d.Settling() {
		t.Fatal("should be settling right after Set")
	}
	time.Sleep(100 * time.Millisecond)
	if d.Settling() {
		t.Fatal("should have settled after the delay elapsed")
	}
}

func TestStopCancelsPendingSettle(t *testing.T) {
	c := &collector{}
	d := New(20*time.Millisecond, c.add)

	d.Set("about to be cancelled")
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	if got := c.snapshot(); len(got) != 0 {
		t.Fatalf("values emitted after Stop: %v", got)
	}
}

func TestSetAfterStopIsIgnored(t *testing.T) {
	c := &collector{}
	d := New(10*time.Millisecond, c.add)
	d.Stop()
	d.Set("late")

	time.Sleep(40 * time.Millisecond)
	if got := c.snapshot(); len(got) != 0 {
		t.Fatalf("values emitted after Stop: %v", got)
	}
}

func TestSequentialSettles(t *testing.T) {
	c := &collector{}
	d := New(15*time.Millisecond, c.add)
	defer d.Stop()

	d.Set("first")
	time.Sleep(50 * time.Millisecond)
	d.Set("second")
	time.Sleep(50 * time.Millisecond)

	got := c.snapshot()
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Fatalf("settled values = %v, want [first second]", got)
	}
}
