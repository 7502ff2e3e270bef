// Package playback runs a regular listening session: a playlist played in
// order with repeat, speed and shuffle settings, and a circuit breaker that
// ends the session after too many consecutive load failures.
package playback

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/llehouerou/shloka/internal/catalog"
	"github.com/llehouerou/shloka/internal/notice"
	"github.com/llehouerou/shloka/internal/player"
	"github.com/llehouerou/shloka/internal/state"
)

var (
	ErrEmptySelection  = errors.New("no tracks selected")
	ErrTooManyFailures = errors.New("too many consecutive playback errors")
	ErrNotActive       = errors.New("no active session")
)

// History records what the user played.
type History interface {
	SetLastSelection(ids []int) error
	PushRecent(ids []int) (state.RecentEntry, error)
}

// Cursor is the position within the session playlist.
type Cursor struct {
	Index  int
	Repeat int // plays of the current index completed under RepeatEachN
}

// Engine plays a session playlist through a media primitive. It is not safe
// for concurrent use: every method and every player callback must run on
// the same goroutine.
type Engine struct {
	player  player.Interface
	cat     *catalog.Catalog
	history History
	sink    notice.Sink
	rng     *rand.Rand
	log     zerolog.Logger

	settings Settings
	playlist []int
	cursor   Cursor
	state    State
	breaker  Breaker
	current  int

	subs   []*Subscription
	subsMu sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

func WithHistory(h History) Option { return func(e *Engine) { e.history = h } }
func WithSink(s notice.Sink) Option { return func(e *Engine) { e.sink = s } }
func WithRand(r *rand.Rand) Option { return func(e *Engine) { e.rng = r } }
func WithLogger(l zerolog.Logger) Option { return func(e *Engine) { e.log = l } }
func WithMaxErrors(n int) Option { return func(e *Engine) { e.breaker = NewBreaker(n) } }
func WithSettings(s Settings) Option { return func(e *Engine) { e.settings = s } }

func New(p player.Interface, cat *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		player:   p,
		cat:      cat,
		sink:     notice.Discard,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		log:      zerolog.Nop(),
		settings: DefaultSettings(),
		breaker:  NewBreaker(DefaultMaxErrorSkip),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start begins a new session over ids with the given settings. The
// pre-shuffle ids are saved as the last selection and pushed to history.
func (e *Engine) Start(ids []int, s Settings) error {
	if len(ids) == 0 {
		e.sink.Notify(notice.Notice{
			Level: notice.Warn,
			Kind:  notice.KindEmptySelection,
			Text:  "Please select at least one shloka.",
		})
		return ErrEmptySelection
	}
	if err := s.Validate(); err != nil {
		return err
	}

	e.settings = s
	e.playlist = slices.Clone(ids)
	if s.Shuffle {
		e.rng.Shuffle(len(e.playlist), func(i, j int) {
			e.playlist[i], e.playlist[j] = e.playlist[j], e.playlist[i]
		})
	}
	e.cursor = Cursor{}
	e.breaker.Reset()
	e.current = 0
	e.remember(ids)

	e.log.Info().Int("tracks", len(ids)).Str("repeat", s.Repeat.String()).
		Float64("speed", s.Speed).Bool("shuffle", s.Shuffle).Msg("session started")

	e.setState(StatePlaying)
	e.loadCurrent()
	return nil
}

func (e *Engine) remember(ids []int) {
	if e.history == nil {
		return
	}
	if err := e.history.SetLastSelection(ids); err != nil && !errors.Is(err, state.ErrUnavailable) {
		e.log.Warn().Err(err).Msg("save last selection")
	}
	if _, err := e.history.PushRecent(ids); err != nil && !errors.Is(err, state.ErrUnavailable) {
		e.log.Warn().Err(err).Msg("save recent selection")
	}
}

// LoadTrack loads a track from the start and plays it at the current speed.
// A blocked start is reported to the sink and returned.
func (e *Engine) LoadTrack(id int) error {
	e.player.Load(e.cat.URL(id))
	e.player.SetRate(e.settings.Speed)
	return e.play()
}

func (e *Engine) play() error {
	err := e.player.Play()
	if err == nil {
		return nil
	}
	if errors.Is(err, player.ErrBlocked) {
		e.sink.Notify(notice.Notice{
			Level: notice.Warn,
			Kind:  notice.KindPlaybackBlocked,
			Text:  "Playback was blocked. Press play to start.",
		})
	}
	e.log.Warn().Err(err).Msg("play")
	return err
}

func (e *Engine) loadCurrent() {
	id := e.playlist[e.cursor.Index]
	prev := e.current
	e.current = id
	e.broadcastTrack(TrackChange{
		Previous: prev,
		Current:  id,
		Index:    e.cursor.Index,
		Total:    len(e.playlist),
	})
	if err := e.LoadTrack(id); err != nil {
		e.setState(StatePaused)
	}
}

func (e *Engine) replay() {
	if err := e.player.Seek(0); err != nil {
		e.log.Warn().Err(err).Msg("seek to start")
	}
	if err := e.play(); err != nil {
		e.setState(StatePaused)
	}
}

// OnEnded applies the repeat policy when the current track finishes.
func (e *Engine) OnEnded() {
	if e.state != StatePlaying {
		return
	}
	switch e.settings.Repeat {
	case RepeatTrack:
		e.replay()
		return
	case RepeatEachN:
		e.cursor.Repeat++
		if e.cursor.Repeat < e.settings.RepeatEach {
			e.replay()
			return
		}
	}
	e.advance()
}

func (e *Engine) advance() {
	e.cursor.Index++
	e.cursor.Repeat = 0
	if e.cursor.Index >= len(e.playlist) {
		if e.settings.Repeat != RepeatPlaylist {
			e.finish()
			return
		}
		e.cursor.Index = 0
	}
	e.loadCurrent()
}

func (e *Engine) finish() {
	e.player.Stop()
	e.cursor.Index = len(e.playlist)
	e.setState(StateFinished)
	e.log.Info().Msg("playlist finished")
	e.sink.Notify(notice.Notice{Level: notice.Info, Kind: notice.KindFinished, Text: "Playlist finished."})
}

// OnError skips a track that failed to load, or ends the session once the
// breaker trips.
func (e *Engine) OnError(err error) {
	if !e.state.IsActive() {
		return
	}
	e.log.Warn().Err(err).Int("track", e.current).Msg("track failed")
	e.broadcastError(ErrorEvent{Operation: "load", Track: e.current, Err: err})

	if e.breaker.Fail() {
		e.player.Stop()
		e.cursor.Index = len(e.playlist)
		e.setState(StateFailed)
		e.sink.Notify(notice.Notice{
			Level: notice.Error,
			Kind:  notice.KindTooManyFailures,
			Text:  fmt.Sprintf("Too many errors (%d in a row). Playback stopped.", e.breaker.Count()),
		})
		return
	}

	e.sink.Notify(notice.Notice{
		Level: notice.Warn,
		Kind:  notice.KindTrackLoad,
		Text:  fmt.Sprintf("Error playing shloka %d. Skipping.", e.current),
	})
	e.setState(StatePlaying)
	e.advance()
}

// OnPlaying resets the breaker once audio actually starts.
func (e *Engine) OnPlaying() {
	e.breaker.Reset()
}

// TogglePause pauses a playing session or resumes a paused one.
func (e *Engine) TogglePause() error {
	switch e.state {
	case StatePlaying:
		e.Pause()
		return nil
	case StatePaused:
		return e.Resume()
	default:
		return ErrNotActive
	}
}

func (e *Engine) Pause() {
	if e.state != StatePlaying {
		return
	}
	e.player.Pause()
	e.setState(StatePaused)
}

func (e *Engine) Resume() error {
	if e.state != StatePaused {
		return ErrNotActive
	}
	if e.player.Source() == "" {
		e.loadCurrent()
		if e.state == StatePaused {
			return player.ErrBlocked
		}
		e.setState(StatePlaying)
		return nil
	}
	if err := e.play(); err != nil {
		return err
	}
	e.setState(StatePlaying)
	return nil
}

// Next skips to the following position, ignoring track repeat.
func (e *Engine) Next() error {
	if !e.state.IsActive() {
		return ErrNotActive
	}
	e.setState(StatePlaying)
	e.advance()
	return nil
}

// Previous restarts the previous position, or the first one.
func (e *Engine) Previous() error {
	if !e.state.IsActive() {
		return ErrNotActive
	}
	e.cursor.Index = max(e.cursor.Index-1, 0)
	e.cursor.Repeat = 0
	e.setState(StatePlaying)
	e.loadCurrent()
	return nil
}

// Release stops the media primitive and drops the session so another
// engine can take it over.
func (e *Engine) Release() {
	e.player.Stop()
	e.playlist = nil
	e.cursor = Cursor{}
	e.current = 0
	e.setState(StateIdle)
}

// SetSpeed changes the playback rate. Values outside Speeds are rejected.
func (e *Engine) SetSpeed(v float64) error {
	if !ValidSpeed(v) {
		return fmt.Errorf("%w: %v", ErrInvalidSpeed, v)
	}
	e.settings.Speed = v
	e.player.SetRate(v)
	e.broadcastMode()
	return nil
}

// CycleSpeed moves to the next speed and returns it.
func (e *Engine) CycleSpeed() float64 {
	v := NextSpeed(e.settings.Speed)
	_ = e.SetSpeed(v)
	return v
}

func (e *Engine) SetRepeatMode(m RepeatMode) error {
	if !m.valid() {
		return fmt.Errorf("%w: %d", ErrInvalidRepeatMode, m)
	}
	e.settings.Repeat = m
	e.cursor.Repeat = 0
	e.broadcastMode()
	return nil
}

func (e *Engine) SetRepeatEach(n int) error {
	if n < MinRepeatEach || n > MaxRepeatEach {
		return fmt.Errorf("%w: %d (valid: %d-%d)", ErrInvalidRepeatCount, n, MinRepeatEach, MaxRepeatEach)
	}
	e.settings.RepeatEach = n
	e.broadcastMode()
	return nil
}

// SetShuffle takes effect at the next Start.
func (e *Engine) SetShuffle(on bool) {
	e.settings.Shuffle = on
	e.broadcastMode()
}

func (e *Engine) State() State { return e.state }
func (e *Engine) Settings() Settings { return e.settings }
func (e *Engine) Cursor() Cursor { return e.cursor }
func (e *Engine) Playlist() []int { return slices.Clone(e.playlist) }
func (e *Engine) ErrorCount() int { return e.breaker.Count() }

// Current returns the track at the cursor, if a session is active.
func (e *Engine) Current() (int, bool) {
	if !e.state.IsActive() || e.cursor.Index >= len(e.playlist) {
		return 0, false
	}
	return e.playlist[e.cursor.Index], true
}

// Subscribe returns a new event subscription.
func (e *Engine) Subscribe() *Subscription {
	sub := newSubscription()
	e.subsMu.Lock()
	e.subs = append(e.subs, sub)
	e.subsMu.Unlock()
	return sub
}

// Close ends every subscription.
func (e *Engine) Close() {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	for _, sub := range e.subs {
		sub.close()
	}
	e.subs = nil
}

func (e *Engine) setState(s State) {
	if s == e.state {
		return
	}
	prev := e.state
	e.state = s
	e.each(func(sub *Subscription) { sub.sendState(StateChange{Previous: prev, Current: s}) })
}

func (e *Engine) broadcastTrack(tc TrackChange) {
	e.each(func(sub *Subscription) { sub.sendTrack(tc) })
}

func (e *Engine) broadcastMode() {
	mc := ModeChange{Settings: e.settings}
	e.each(func(sub *Subscription) { sub.sendMode(mc) })
}

func (e *Engine) broadcastError(ev ErrorEvent) {
	e.each(func(sub *Subscription) { sub.sendError(ev) })
}

func (e *Engine) each(fn func(*Subscription)) {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	for _, sub := range e.subs {
		fn(sub)
	}
}
