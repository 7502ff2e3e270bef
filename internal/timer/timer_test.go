package timer_test

import (
	"testing"
	"time"

	"github.com/llehouerou/shloka/internal/timer"
	"github.com/llehouerou/shloka/internal/timer/timertest"
)

const (
	kindA timer.Kind = "a"
	kindB timer.Kind = "b"
)

func TestSchedule_FiresOnce(t *testing.T) {
	clock := timertest.New()
	r := timer.NewRegistry(clock)

	fired := 0
	r.Schedule(kindA, time.Second, func() { fired++ })
	if !r.Pending(kindA) {
		t.Fatal("expected pending timer")
	}

	clock.Advance(999 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("fired early")
	}
	clock.Advance(time.Millisecond)
	clock.Advance(5 * time.Second)
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
	if r.Pending(kindA) {
		t.Error("timer should no longer be pending")
	}
}

func TestSchedule_ReplacesSameKind(t *testing.T) {
	clock := timertest.New()
	r := timer.NewRegistry(clock)

	var got []string
	r.Schedule(kindA, time.Second, func() { got = append(got, "first") })
	r.Schedule(kindA, 2*time.Second, func() { got = append(got, "second") })

	clock.Advance(3 * time.Second)
	if len(got) != 1 || got[0] != "second" {
		t.Errorf("got %v, want [second]", got)
	}
}

func TestEvery_TicksUntilCancelled(t *testing.T) {
	clock := timertest.New()
	r := timer.NewRegistry(clock)

	ticks := 0
	r.Every(kindA, time.Second, func() {
		ticks++
		if ticks == 3 {
			r.Cancel(kindA)
		}
	})

	clock.Advance(10 * time.Second)
	if ticks != 3 {
		t.Errorf("ticks = %d, want 3", ticks)
	}
	if clock.Pending() != 0 {
		t.Errorf("clock still has %d pending callbacks", clock.Pending())
	}
}

func TestCancelAll_NoCallbackAfterCancel(t *testing.T) {
	clock := timertest.New()
	r := timer.NewRegistry(clock)

	fired := false
	r.Schedule(kindA, time.Second, func() { fired = true })
	r.Every(kindB, 500*time.Millisecond, func() { fired = true })
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}

	r.CancelAll()
	clock.Advance(time.Minute)
	if fired {
		t.Error("callback ran after CancelAll")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d after CancelAll", r.Len())
	}
}

// staleClock never stops timers, modelling a callback that was already
// queued when it was cancelled.
type staleClock struct {
	fns []func()
}

type noStop struct{}

func (noStop) Stop() bool { return false }

func (c *staleClock) AfterFunc(_ time.Duration, f func()) timer.Stopper {
	c.fns = append(c.fns, f)
	return noStop{}
}

func TestCancel_StaleCallbackIgnored(t *testing.T) {
	clock := &staleClock{}
	r := timer.NewRegistry(clock)

	fired := 0
	r.Schedule(kindA, time.Second, func() { fired++ })
	r.Cancel(kindA)
	r.Schedule(kindA, time.Second, func() { fired += 10 })

	for _, f := range clock.fns {
		f()
	}
	if fired != 10 {
		t.Errorf("fired = %d, want only the live callback (10)", fired)
	}
}

func TestFakeClock_OrdersByDeadline(t *testing.T) {
	clock := timertest.New()
	var got []int
	clock.AfterFunc(3*time.Second, func() { got = append(got, 3) })
	clock.AfterFunc(time.Second, func() {
		got = append(got, 1)
		clock.AfterFunc(time.Second, func() { got = append(got, 2) })
	})

	clock.Advance(5 * time.Second)
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("order = %v, want [1 2 3]", got)
	}
	if clock.Now() != 5*time.Second {
		t.Errorf("Now() = %v", clock.Now())
	}
}
