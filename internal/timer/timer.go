// Package timer keeps the named one-shot and repeating timers of an engine so
// they can be cancelled individually or all at once.
//
// A Registry is not safe for concurrent use. Its Clock must deliver callbacks
// on the goroutine that owns the registry (see loop.Clock).
package timer

import "time"

// Kind names a timer slot. At most one timer per kind is pending.
type Kind string

// Stopper cancels a scheduled callback.
type Stopper interface {
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Stopper
}

type entry struct {
	token uint64
	stop  Stopper
}

// Registry tracks pending timers by kind.
type Registry struct {
	clock   Clock
	entries map[Kind]*entry
	next    uint64
}

func NewRegistry(c Clock) *Registry {
	return &Registry{clock: c, entries: make(map[Kind]*entry)}
}

// Schedule runs fn once after d, replacing any pending timer of the same kind.
func (r *Registry) Schedule(kind Kind, d time.Duration, fn func()) {
	e := r.replace(kind)
	token := e.token
	e.stop = r.clock.AfterFunc(d, func() {
		if !r.current(kind, token) {
			return
		}
		delete(r.entries, kind)
		fn()
	})
}

// Every runs fn every d until the kind is cancelled or replaced.
func (r *Registry) Every(kind Kind, d time.Duration, fn func()) {
	e := r.replace(kind)
	token := e.token
	var tick func()
	tick = func() {
		if !r.current(kind, token) {
			return
		}
		e.stop = r.clock.AfterFunc(d, tick)
		fn()
	}
	e.stop = r.clock.AfterFunc(d, tick)
}

func (r *Registry) replace(kind Kind) *entry {
	r.Cancel(kind)
	r.next++
	e := &entry{token: r.next}
	r.entries[kind] = e
	return e
}

func (r *Registry) current(kind Kind, token uint64) bool {
	e, ok := r.entries[kind]
	return ok && e.token == token
}

// Cancel stops the pending timer of kind, if any.
func (r *Registry) Cancel(kind Kind) {
	e, ok := r.entries[kind]
	if !ok {
		return
	}
	delete(r.entries, kind)
	if e.stop != nil {
		e.stop.Stop()
	}
}

// CancelAll stops every pending timer.
func (r *Registry) CancelAll() {
	for kind := range r.entries {
		r.Cancel(kind)
	}
}

// Pending reports whether a timer of kind is scheduled.
func (r *Registry) Pending(kind Kind) bool {
	_, ok := r.entries[kind]
	return ok
}

// Len returns the number of pending timers.
func (r *Registry) Len() int {
	return len(r.entries)
}

// System schedules on the runtime timer. Callbacks run on their own
// goroutine, so it only suits registries guarded externally.
type System struct{}

func (System) AfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}
