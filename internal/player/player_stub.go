//go:build !((linux && cgo) || windows || darwin)

package player

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
)

var errNoAudio = errors.New("built without audio output support")

// Player is a placeholder for builds without an audio backend. Every Play
// reports ErrBlocked.
type Player struct {
	source string
	rate   float64
}

func New(_ Fetcher, _ func(func()), _ zerolog.Logger) *Player {
	return &Player{rate: 1}
}

func (p *Player) Load(url string) { p.source = url }
func (p *Player) Play() error { return errors.Join(ErrBlocked, errNoAudio) }
func (p *Player) Pause() {}
func (p *Player) Stop() { p.source = "" }
func (p *Player) Close() {}
func (p *Player) Seek(time.Duration) error { return nil }
func (p *Player) SetRate(rate float64) { p.rate = rate }
func (p *Player) State() State { return Stopped }
func (p *Player) Source() string { return p.source }
func (p *Player) Rate() float64 { return p.rate }
func (p *Player) Position() time.Duration { return 0 }
func (p *Player) Duration() time.Duration { return 0 }
func (p *Player) OnEnded(func()) {}
func (p *Player) OnError(func(error)) {}
func (p *Player) OnPlaying(func()) {}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
