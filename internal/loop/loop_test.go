package loop

import (
	"context"
	"testing"
	"testing/synctest"
	"time"

	"github.com/llehouerou/shloka/internal/timer"
)

func TestLoop_RunsInOrder(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		l := New()
		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- l.Run(ctx) }()

		var got []int
		for i := range 5 {
			l.Post(func() { got = append(got, i) })
		}
		if err := l.Call(ctx, func() {}); err != nil {
			t.Fatalf("Call: %v", err)
		}

		cancel()
		if err := <-errCh; err != context.Canceled {
			t.Errorf("Run returned %v", err)
		}
		for i, v := range got {
			if v != i {
				t.Fatalf("order = %v", got)
			}
		}
		if len(got) != 5 {
			t.Errorf("ran %d functions, want 5", len(got))
		}
	})
}

func TestLoop_PostAfterStopIsDropped(t *testing.T) {
	l := New()
	l.Stop()
	l.Stop()

	done := make(chan struct{})
	go func() {
		for range queueSize + 1 {
			l.Post(func() {})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Post blocked on a stopped loop")
	}
}

func TestClock_CallbacksRunOnLoop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		l := New()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = l.Run(ctx) }()

		reg := timer.NewRegistry(Clock(l))
		fired := make(chan time.Duration, 1)
		start := time.Now()

		if err := l.Call(ctx, func() {
			reg.Schedule("delay", 3*time.Second, func() { fired <- time.Since(start) })
		}); err != nil {
			t.Fatal(err)
		}

		if got := <-fired; got != 3*time.Second {
			t.Errorf("fired after %v, want 3s", got)
		}
	})
}

func TestClock_CancelBeforeFire(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		l := New()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = l.Run(ctx) }()

		reg := timer.NewRegistry(Clock(l))
		fired := false
		_ = l.Call(ctx, func() {
			reg.Schedule("delay", time.Second, func() { fired = true })
		})
		time.Sleep(500 * time.Millisecond)
		_ = l.Call(ctx, reg.CancelAll)
		time.Sleep(2 * time.Second)
		synctest.Wait()

		_ = l.Call(ctx, func() {
			if fired {
				t.Error("cancelled timer fired")
			}
		})
	})
}
