// Package quiz runs self-test sessions: a random track plays for a few
// seconds, pauses, and the listener has a countdown to name it before the
// answer is revealed.
package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/shloka/internal/notice"
	"github.com/llehouerou/shloka/internal/playback"
	"github.com/llehouerou/shloka/internal/player"
	"github.com/llehouerou/shloka/internal/timer"
)

// Timer kinds owned by the quiz.
const (
	TimerDelay     timer.Kind = "quiz.delay"
	TimerCountdown timer.Kind = "quiz.countdown"
	TimerAdvance   timer.Kind = "quiz.advance"
)

// Defaults and bounds, in seconds for time and delay.
const (
	DefaultTime  = 20
	DefaultDelay = 3
	MinTime      = 1
	MaxTime      = 300
	MinDelay     = 1
	MaxDelay     = 60

	DefaultAutoAdvanceDelay   = 1500 * time.Millisecond
	DefaultRevealAdvanceDelay = 1000 * time.Millisecond
)

var (
	ErrInvalidTime     = errors.New("quiz time out of range")
	ErrInvalidDelay    = errors.New("quiz delay out of range")
	ErrNothingToReveal = errors.New("no question to reveal")
)

// Loader starts a track from the beginning.
type Loader interface {
	LoadTrack(id int) error
}

// Pool supplies the tracks questions are drawn from.
type Pool interface {
	QuizPool() []int
}

// PoolFunc adapts a function to Pool.
type PoolFunc func() []int

func (f PoolFunc) QuizPool() []int { return f() }

// Settings are the quiz preferences.
type Settings struct {
	Time     int // seconds to answer
	Delay    int // seconds of audio before pausing
	AutoPlay bool
}

func DefaultSettings() Settings {
	return Settings{Time: DefaultTime, Delay: DefaultDelay}
}

func (s Settings) Validate() error {
	if s.Time < MinTime || s.Time > MaxTime {
		return fmt.Errorf("%w: %d (valid: %d-%d)", ErrInvalidTime, s.Time, MinTime, MaxTime)
	}
	if s.Delay < MinDelay || s.Delay > MaxDelay {
		return fmt.Errorf("%w: %d (valid: %d-%d)", ErrInvalidDelay, s.Delay, MinDelay, MaxDelay)
	}
	return nil
}

// Engine is the quiz state machine. It is not safe for concurrent use.
type Engine struct {
	loader Loader
	player player.Interface
	pool   Pool
	timers *timer.Registry
	sink   notice.Sink
	rng    *rand.Rand
	log    zerolog.Logger

	autoAdvanceDelay   time.Duration
	revealAdvanceDelay time.Duration

	settings Settings
	state    State
	original []int // pool as first drawn
	playlist []int
	index    int
	current  int
	asked    int
	remain   int
	paused   bool // paused for the answer
	blocked  State // state to retry after the host refused audio, or StateIdle
	breaker  playback.Breaker
}

// Option configures an Engine.
type Option func(*Engine)

func WithSink(s notice.Sink) Option { return func(e *Engine) { e.sink = s } }
func WithRand(r *rand.Rand) Option { return func(e *Engine) { e.rng = r } }
func WithLogger(l zerolog.Logger) Option { return func(e *Engine) { e.log = l } }
func WithSettings(s Settings) Option { return func(e *Engine) { e.settings = s } }
func WithMaxErrors(n int) Option { return func(e *Engine) { e.breaker = playback.NewBreaker(n) } }

// WithAdvanceDelays sets the pause before the next question after a
// time-out and after a revealed answer finishes.
func WithAdvanceDelays(afterTimeout, afterReveal time.Duration) Option {
	return func(e *Engine) {
		e.autoAdvanceDelay = afterTimeout
		e.revealAdvanceDelay = afterReveal
	}
}

func New(l Loader, p player.Interface, pool Pool, timers *timer.Registry, opts ...Option) *Engine {
	e := &Engine{
		loader:             l,
		player:             p,
		pool:               pool,
		timers:             timers,
		sink:               notice.Discard,
		rng:                rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		log:                zerolog.Nop(),
		autoAdvanceDelay:   DefaultAutoAdvanceDelay,
		revealAdvanceDelay: DefaultRevealAdvanceDelay,
		settings:           DefaultSettings(),
		breaker:            playback.NewBreaker(playback.DefaultMaxErrorSkip),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enter takes over the media primitive for a fresh quiz.
func (e *Engine) Enter() {
	e.reset()
}

// Exit stops audio and every quiz timer.
func (e *Engine) Exit() {
	e.reset()
}

func (e *Engine) reset() {
	e.timers.CancelAll()
	e.player.Stop()
	e.original = nil
	e.playlist = nil
	e.index = 0
	e.current = 0
	e.asked = 0
	e.remain = 0
	e.paused = false
	e.blocked = StateIdle
	e.breaker.Reset()
	e.state = StateIdle
}

// ResetPool drops the drawn pool so the next question reads the selection
// again. The current question is left alone.
func (e *Engine) ResetPool() {
	e.original = nil
	e.playlist = nil
	e.index = 0
}

// PlayNext asks the next question. The first call draws the pool from the
// selection; once every track was asked the same pool is shuffled again.
func (e *Engine) PlayNext() error {
	e.timers.CancelAll()
	e.blocked = StateIdle

	if e.index >= len(e.playlist) {
		if len(e.original) == 0 {
			e.original = slices.Clone(e.pool.QuizPool())
		}
		pool := slices.Clone(e.original)
		if len(pool) == 0 {
			e.player.Stop()
			e.state = StateIdle
			e.sink.Notify(notice.Notice{
				Level: notice.Warn,
				Kind:  notice.KindEmptySelection,
				Text:  "Please select at least one shloka for the quiz.",
			})
			return playback.ErrEmptySelection
		}
		e.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		e.playlist = pool
		e.index = 0
		e.log.Debug().Int("pool", len(pool)).Msg("quiz pool drawn")
	}

	e.current = e.playlist[e.index]
	e.index++
	e.asked++
	e.paused = false
	e.remain = e.settings.Time
	e.state = StateLoading
	e.log.Debug().Int("track", e.current).Int("question", e.asked).Msg("quiz question")

	return e.load()
}

// load starts the current track in the current state. A refused start
// leaves the quiz paused on the same question.
func (e *Engine) load() error {
	err := e.loader.LoadTrack(e.current)
	if err == nil {
		return nil
	}
	if errors.Is(err, player.ErrBlocked) {
		e.blocked = e.state
	}
	e.state = StatePaused
	return err
}

// OnPlaying arms the listening delay the first time a question's audio starts.
func (e *Engine) OnPlaying() {
	e.breaker.Reset()
	if e.state != StateLoading || e.paused || e.timers.Pending(TimerDelay) {
		return
	}
	e.timers.Schedule(TimerDelay, seconds(e.settings.Delay), e.onDelay)
}

func (e *Engine) onDelay() {
	if e.state != StateLoading {
		return
	}
	if e.player.State() == player.Playing {
		e.player.Pause()
		e.paused = true
		e.startCountdown()
	}
}

func (e *Engine) startCountdown() {
	e.state = StateListening
	e.remain = e.settings.Time
	e.timers.Every(TimerCountdown, time.Second, e.tick)
}

func (e *Engine) tick() {
	e.remain--
	if e.remain > 0 {
		return
	}
	e.remain = 0
	e.timers.Cancel(TimerCountdown)
	e.state = StateTimedOut
	e.sink.Notify(notice.Infof("Time's up!"))
	if e.settings.AutoPlay {
		e.scheduleNext(e.autoAdvanceDelay)
	}
}

func (e *Engine) scheduleNext(d time.Duration) {
	e.timers.Schedule(TimerAdvance, d, func() {
		if err := e.PlayNext(); err != nil {
			e.log.Warn().Err(err).Msg("auto-advance")
		}
	})
}

// RevealAnswer cancels the countdown and plays the asked track in full.
func (e *Engine) RevealAnswer() error {
	if e.current == 0 {
		return ErrNothingToReveal
	}
	e.timers.CancelAll()
	e.blocked = StateIdle
	e.paused = false
	e.remain = 0
	e.state = StateRevealed
	e.sink.Notify(notice.Infof(fmt.Sprintf("It was shloka %d.", e.current)))
	return e.load()
}

// OnEnded handles a question track that ran out before the delay, and the
// end of a revealed answer.
func (e *Engine) OnEnded() {
	switch e.state {
	case StateLoading:
		e.timers.Cancel(TimerDelay)
		e.paused = true
		e.startCountdown()
	case StateRevealed:
		if e.settings.AutoPlay {
			e.scheduleNext(e.revealAdvanceDelay)
		}
	}
}

// OnError skips a question whose audio failed, until the breaker trips.
func (e *Engine) OnError(err error) {
	if e.state != StateLoading && e.state != StateRevealed {
		return
	}
	e.log.Warn().Err(err).Int("track", e.current).Msg("quiz track failed")
	if e.breaker.Fail() {
		e.timers.CancelAll()
		e.player.Stop()
		e.state = StateIdle
		e.sink.Notify(notice.Notice{
			Level: notice.Error,
			Kind:  notice.KindTooManyFailures,
			Text:  fmt.Sprintf("Too many errors (%d in a row). Quiz stopped.", e.breaker.Count()),
		})
		return
	}
	e.sink.Notify(notice.Notice{
		Level: notice.Warn,
		Kind:  notice.KindTrackLoad,
		Text:  fmt.Sprintf("Error playing shloka %d. Skipping.", e.current),
	})
	_ = e.PlayNext()
}

// PauseResume pauses audible playback and every timer. After a blocked
// start it retries the same question, otherwise it moves on to the next.
func (e *Engine) PauseResume() error {
	if e.player.State() == player.Playing {
		e.player.Pause()
		e.timers.CancelAll()
		e.state = StatePaused
		return nil
	}
	if e.blocked != StateIdle && e.current != 0 {
		e.state = e.blocked
		e.blocked = StateIdle
		return e.load()
	}
	return e.PlayNext()
}

// ToggleAutoPlay flips auto-advance. Pending timers keep running.
func (e *Engine) ToggleAutoPlay() bool {
	e.settings.AutoPlay = !e.settings.AutoPlay
	if e.settings.AutoPlay {
		e.sink.Notify(notice.Infof("Auto-play enabled."))
	} else {
		e.sink.Notify(notice.Infof("Auto-play disabled."))
	}
	return e.settings.AutoPlay
}

// SetTime sets the answer countdown for the next question.
func (e *Engine) SetTime(s int) error {
	next := e.settings
	next.Time = s
	if err := next.Validate(); err != nil {
		return err
	}
	e.settings = next
	return nil
}

// SetDelay sets how long a question plays before pausing.
func (e *Engine) SetDelay(s int) error {
	next := e.settings
	next.Delay = s
	if err := next.Validate(); err != nil {
		return err
	}
	e.settings = next
	return nil
}

func (e *Engine) State() State { return e.state }
func (e *Engine) Settings() Settings { return e.settings }
func (e *Engine) Remaining() int { return e.remain }
func (e *Engine) Asked() int { return e.asked }

// Current returns the track of the current question.
func (e *Engine) Current() (int, bool) {
	return e.current, e.current != 0
}

// Progress returns the 1-based question number within the pool and the
// pool size.
func (e *Engine) Progress() (int, int) {
	return e.index, len(e.playlist)
}

// HasPausedForAnswer reports whether the current question paused for the
// listener's answer.
func (e *Engine) HasPausedForAnswer() bool { return e.paused }

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
