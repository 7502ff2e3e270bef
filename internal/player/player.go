//go:build (linux && cgo) || windows || darwin

package player

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/rs/zerolog"
)

const (
	sampleRate       = beep.SampleRate(44100)
	resampleQuality  = 4
	speakerBufferDur = time.Second / 10
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(sampleRate, sampleRate.N(speakerBufferDur))
	})
	return speakerErr
}

// Player streams MP3 sources fetched over HTTP to the default audio device.
//
// All methods must be called from the goroutine that drains post. Callbacks
// are delivered through post as well.
type Player struct {
	fetch Fetcher
	post  func(func())
	log   zerolog.Logger

	gen       uint64 // bumped by Load and Stop
	seq       uint64 // bumped each time a chain is handed to the speaker
	source    string
	state     State
	wantPlay  bool
	queued    bool
	rate      float64
	cancel    context.CancelFunc
	onEnded   func()
	onError   func(error)
	onPlaying func()

	// Shared with the speaker goroutine, guarded by speaker.Lock.
	stream    beep.StreamSeekCloser
	format    beep.Format
	ctrl      *beep.Ctrl
	resampler *beep.Resampler
}

// New creates a player that downloads sources with f and runs callbacks
// through post.
func New(f Fetcher, post func(func()), logger zerolog.Logger) *Player {
	return &Player{
		fetch: f,
		post:  post,
		log:   logger,
		rate:  1,
	}
}

func (p *Player) Load(url string) {
	p.release()
	p.gen++
	gen := p.gen
	p.source = url
	p.state = Stopped
	p.wantPlay = false

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	go func() {
		data, err := p.fetch.Fetch(ctx, url)
		p.post(func() { p.loaded(gen, data, err) })
	}()
}

func (p *Player) loaded(gen uint64, data []byte, err error) {
	if gen != p.gen {
		return
	}
	if err == nil {
		err = p.decode(data)
	}
	if err != nil {
		p.log.Warn().Err(err).Str("url", p.source).Msg("load failed")
		p.state = Stopped
		p.wantPlay = false
		if p.onError != nil {
			p.onError(fmt.Errorf("%w: %w", ErrLoad, err))
		}
		return
	}
	if p.wantPlay {
		p.start()
	}
}

// memFile lets the decoder seek within an in-memory source.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func (p *Player) decode(data []byte) error {
	stream, format, err := mp3.Decode(memFile{bytes.NewReader(data)})
	if err != nil {
		return err
	}
	resampler := beep.ResampleRatio(resampleQuality, p.ratio(format), stream)
	ctrl := &beep.Ctrl{Streamer: resampler, Paused: true}

	speaker.Lock()
	p.stream, p.format, p.resampler, p.ctrl = stream, format, resampler, ctrl
	speaker.Unlock()
	return nil
}

func (p *Player) ratio(format beep.Format) float64 {
	return float64(format.SampleRate) / float64(sampleRate) * p.rate
}

func (p *Player) start() {
	speaker.Lock()
	if p.stream.Position() >= p.stream.Len() {
		_ = p.stream.Seek(0)
	}
	p.ctrl.Paused = false
	speaker.Unlock()

	if !p.queued {
		p.seq++
		gen, seq := p.gen, p.seq
		p.queued = true
		speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
			// Runs on the speaker goroutine with the speaker lock held.
			go p.post(func() { p.ended(gen, seq) })
		})))
	}
	p.state = Playing

	gen := p.gen
	go p.post(func() {
		if gen == p.gen && p.state == Playing && p.onPlaying != nil {
			p.onPlaying()
		}
	})
}

func (p *Player) ended(gen, seq uint64) {
	if gen != p.gen || seq != p.seq {
		return
	}
	p.queued = false
	p.state = Stopped
	p.wantPlay = false
	if p.onEnded != nil {
		p.onEnded()
	}
}

func (p *Player) Play() error {
	if p.source == "" {
		return ErrNoSource
	}
	if err := initSpeaker(); err != nil {
		return fmt.Errorf("%w: %w", ErrBlocked, err)
	}
	p.wantPlay = true
	p.state = Playing
	if p.ctrl != nil {
		p.start()
	}
	return nil
}

func (p *Player) Pause() {
	p.wantPlay = false
	if p.ctrl != nil {
		speaker.Lock()
		p.ctrl.Paused = true
		speaker.Unlock()
	}
	if p.state == Playing {
		p.state = Paused
	}
}

func (p *Player) Stop() {
	p.release()
	p.gen++
	p.source = ""
	p.state = Stopped
	p.wantPlay = false
}

// Close stops playback and shuts the audio device down.
func (p *Player) Close() {
	p.Stop()
	if initSpeaker() == nil {
		speaker.Close()
	}
}

func (p *Player) release() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	if p.queued {
		speaker.Clear()
		p.queued = false
	}
	if p.stream != nil {
		speaker.Lock()
		stream := p.stream
		p.stream, p.ctrl, p.resampler = nil, nil, nil
		speaker.Unlock()
		stream.Close()
	}
}

func (p *Player) Seek(pos time.Duration) error {
	if p.stream == nil {
		return nil
	}
	speaker.Lock()
	defer speaker.Unlock()
	n := min(max(p.format.SampleRate.N(pos), 0), p.stream.Len())
	return p.stream.Seek(n)
}

func (p *Player) SetRate(rate float64) {
	p.rate = rate
	if p.resampler == nil {
		return
	}
	speaker.Lock()
	p.resampler.SetRatio(p.ratio(p.format))
	speaker.Unlock()
}

func (p *Player) State() State { return p.state }
func (p *Player) Source() string { return p.source }
func (p *Player) Rate() float64 { return p.rate }

func (p *Player) Position() time.Duration {
	if p.stream == nil {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return p.format.SampleRate.D(p.stream.Position())
}

func (p *Player) Duration() time.Duration {
	if p.stream == nil {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return p.format.SampleRate.D(p.stream.Len())
}

func (p *Player) OnEnded(fn func()) { p.onEnded = fn }
func (p *Player) OnError(fn func(error)) { p.onError = fn }
func (p *Player) OnPlaying(fn func()) { p.onPlaying = fn }

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
