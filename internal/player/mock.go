package player

import "time"

// Mock is a test double for Player. Callbacks fire only when a test calls
// EmitPlaying, EmitEnded or EmitError.
type Mock struct {
	state     State
	source    string
	rate      float64
	position  time.Duration
	duration  time.Duration
	playErr   error
	loads     []string
	playCalls int
	seekCalls []time.Duration
	onEnded   func()
	onError   func(error)
	onPlaying func()
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{state: Stopped, rate: 1}
}

func (m *Mock) Load(url string) {
	m.loads = append(m.loads, url)
	m.source = url
	m.state = Stopped
	m.position = 0
}

func (m *Mock) Play() error {
	m.playCalls++
	if m.playErr != nil {
		return m.playErr
	}
	if m.source == "" {
		return ErrNoSource
	}
	m.state = Playing
	return nil
}

func (m *Mock) Pause() {
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) Stop() {
	m.state = Stopped
	m.source = ""
}

func (m *Mock) Seek(pos time.Duration) error {
	m.seekCalls = append(m.seekCalls, pos)
	m.position = pos
	return nil
}

func (m *Mock) SetRate(rate float64) { m.rate = rate }

func (m *Mock) State() State { return m.state }

func (m *Mock) Source() string { return m.source }

func (m *Mock) Position() time.Duration { return m.position }

func (m *Mock) Duration() time.Duration { return m.duration }

func (m *Mock) OnEnded(fn func()) { m.onEnded = fn }

func (m *Mock) OnError(fn func(error)) { m.onError = fn }

func (m *Mock) OnPlaying(fn func()) { m.onPlaying = fn }

// Test helpers

func (m *Mock) SetPlayError(err error) { m.playErr = err }

func (m *Mock) SetDuration(d time.Duration) { m.duration = d }

func (m *Mock) Rate() float64 { return m.rate }

// Loads returns every URL passed to Load.
func (m *Mock) Loads() []string { return m.loads }

func (m *Mock) PlayCalls() int { return m.playCalls }

func (m *Mock) SeekCalls() []time.Duration { return m.seekCalls }

// EmitPlaying simulates audio starting.
func (m *Mock) EmitPlaying() {
	if m.onPlaying != nil {
		m.onPlaying()
	}
}

// EmitEnded simulates the source reaching its end.
func (m *Mock) EmitEnded() {
	m.state = Stopped
	if m.onEnded != nil {
		m.onEnded()
	}
}

// EmitError simulates a load failure.
func (m *Mock) EmitError(err error) {
	m.state = Stopped
	if m.onError != nil {
		m.onError(err)
	}
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
