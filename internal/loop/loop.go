// Package loop runs functions one at a time on a single goroutine. Everything
// that touches core state is posted here: media callbacks, timer firings and
// user intents from other goroutines.
package loop

import (
	"context"
	"time"

	"github.com/llehouerou/shloka/internal/timer"
)

const queueSize = 64

// Poster schedules fn to run on the loop goroutine.
type Poster interface {
	Post(fn func())
}

// Loop is a serial executor.
type Loop struct {
	queue chan func()
	done  chan struct{}
}

func New() *Loop {
	return &Loop{
		queue: make(chan func(), queueSize),
		done:  make(chan struct{}),
	}
}

// Post queues fn. It blocks while the queue is full and drops fn once the
// loop has stopped.
func (l *Loop) Post(fn func()) {
	select {
	case l.queue <- fn:
	case <-l.done:
	}
}

// C exposes the queue for hosts that drain it themselves, such as a
// bubbletea program. Only one consumer may drain the loop.
func (l *Loop) C() <-chan func() {
	return l.queue
}

// Run executes queued functions until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}

// Stop makes further posts no-ops. Safe to call more than once.
func (l *Loop) Stop() {
	select {
	case <-l.done:
	default:
		close(l.done)
	}
}

// Done is closed once the loop stops.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Call runs fn on the loop and waits for it to finish.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	l.Post(func() {
		defer close(finished)
		fn()
	})
	select {
	case <-finished:
		return nil
	case <-l.done:
		return context.Canceled
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Clock returns a timer.Clock whose callbacks run on p.
func Clock(p Poster) timer.Clock {
	return postingClock{p: p}
}

type postingClock struct {
	p Poster
}

func (c postingClock) AfterFunc(d time.Duration, f func()) timer.Stopper {
	return time.AfterFunc(d, func() { c.p.Post(f) })
}
