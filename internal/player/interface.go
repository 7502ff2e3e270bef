package player

import (
	"errors"
	"time"
)

var (
	// ErrBlocked means the host refused audio output. Retrying Play after
	// user interaction may succeed.
	ErrBlocked = errors.New("playback blocked")
	// ErrLoad wraps fetch and decode failures delivered through OnError.
	ErrLoad     = errors.New("track load failed")
	ErrNoSource = errors.New("no source loaded")
)

// Interface is the media primitive the engines drive. Implementations deliver
// every callback on the goroutine that owns the engines and never deliver a
// callback that belongs to a source replaced by Load or cleared by Stop.
type Interface interface {
	// Load replaces the current source and starts fetching it.
	Load(url string)
	// Play starts or resumes playback, restarting an ended source.
	Play() error
	Pause()
	// Stop pauses and clears the source.
	Stop()
	Seek(pos time.Duration) error
	SetRate(rate float64)
	State() State
	Source() string
	Position() time.Duration
	Duration() time.Duration
	OnEnded(fn func())
	OnError(fn func(error))
	OnPlaying(fn func())
}
