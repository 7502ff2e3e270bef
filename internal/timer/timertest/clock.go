// Package timertest provides a manually advanced clock for timer tests.
package timertest

import (
	"time"

	"github.com/llehouerou/shloka/internal/timer"
)

// Clock is a virtual clock. Callbacks run synchronously inside Advance, in
// deadline order, on the caller's goroutine.
type Clock struct {
	now    time.Duration
	seq    uint64
	timers []*fakeTimer
}

type fakeTimer struct {
	at   time.Duration
	seq  uint64
	f    func()
	done bool
}

func (t *fakeTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	return true
}

func New() *Clock { return &Clock{} }

// Now returns the virtual time elapsed since the clock was created.
func (c *Clock) Now() time.Duration { return c.now }

func (c *Clock) AfterFunc(d time.Duration, f func()) timer.Stopper {
	c.seq++
	t := &fakeTimer{at: c.now + max(d, 0), seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward by d, firing every callback that comes due,
// including ones scheduled by callbacks during the advance.
func (c *Clock) Advance(d time.Duration) {
	target := c.now + d
	for {
		t := c.nextDue(target)
		if t == nil {
			break
		}
		c.now = t.at
		t.done = true
		t.f()
	}
	c.now = target
	c.compact()
}

func (c *Clock) nextDue(target time.Duration) *fakeTimer {
	var next *fakeTimer
	for _, t := range c.timers {
		if t.done || t.at > target {
			continue
		}
		if next == nil || t.at < next.at || (t.at == next.at && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (c *Clock) compact() {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.done {
			live = append(live, t)
		}
	}
	c.timers = live
}

// Pending returns the number of callbacks not yet fired or stopped.
func (c *Clock) Pending() int {
	n := 0
	for _, t := range c.timers {
		if !t.done {
			n++
		}
	}
	return n
}

var _ timer.Clock = (*Clock)(nil)
