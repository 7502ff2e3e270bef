// Package notice carries user-facing notifications out of the core.
package notice

import "sync"

// Level is the severity of a notice.
type Level int

const (
	Info Level = iota
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Kind classifies error notices so adapters can react to specific failures.
type Kind int

const (
	KindNone Kind = iota
	KindEmptySelection
	KindInvalidRange
	KindPlaybackBlocked
	KindTrackLoad
	KindTooManyFailures
	KindNameEmpty
	KindNameExists
	KindStorageUnavailable
	KindFinished
)

// Notice is a single message for the user.
type Notice struct {
	Level Level
	Kind  Kind
	Text  string
}

func Infof(text string) Notice { return Notice{Level: Info, Text: text} }

// Sink receives notices. Implementations must not block.
type Sink interface {
	Notify(n Notice)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Notice)

func (f SinkFunc) Notify(n Notice) { f(n) }

// Discard drops every notice.
var Discard Sink = SinkFunc(func(Notice) {})

// Hub fans notices out to every subscribed sink.
type Hub struct {
	mu    sync.Mutex
	sinks []Sink
}

func NewHub() *Hub { return &Hub{} }

// Subscribe adds a sink. It returns a function that removes it again.
func (h *Hub) Subscribe(s Sink) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sinks = append(h.sinks, s)
	idx := len(h.sinks) - 1
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if idx < len(h.sinks) {
			h.sinks[idx] = nil
		}
	}
}

func (h *Hub) Notify(n Notice) {
	h.mu.Lock()
	sinks := append([]Sink(nil), h.sinks...)
	h.mu.Unlock()

	for _, s := range sinks {
		if s != nil {
			s.Notify(n)
		}
	}
}

// Recorder keeps every notice it receives. Used in tests.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	r.notices = append(r.notices, n)
	r.mu.Unlock()
}

// All returns a copy of the recorded notices.
func (r *Recorder) All() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Last returns the most recent notice.
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

// Has reports whether a notice of the given kind was recorded.
func (r *Recorder) Has(k Kind) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notices {
		if n.Kind == k {
			return true
		}
	}
	return false
}

// Reset forgets recorded notices.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.notices = nil
	r.mu.Unlock()
}
