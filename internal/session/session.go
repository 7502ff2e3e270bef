// Package session owns the player core: the selection, both engines, the
// persistence gateway and the media primitive. Adapters drive it through
// intents and render it from snapshots. A Core is not safe for concurrent
// use; every intent and every player or timer callback must run on the
// goroutine that owns it (see loop.Loop).
package session

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/shloka/internal/catalog"
	"github.com/llehouerou/shloka/internal/notice"
	"github.com/llehouerou/shloka/internal/playback"
	"github.com/llehouerou/shloka/internal/player"
	"github.com/llehouerou/shloka/internal/quiz"
	"github.com/llehouerou/shloka/internal/selection"
	"github.com/llehouerou/shloka/internal/state"
	"github.com/llehouerou/shloka/internal/timer"
)

var (
	ErrNotQuizMode     = errors.New("not in quiz mode")
	ErrQuizMode        = errors.New("not available in quiz mode")
	ErrSaveUnavailable = errors.New("select individual shlokas outside quiz mode to save a playlist")
)

// Config carries the tunables of a Core.
type Config struct {
	Playback  playback.Settings
	Quiz      quiz.Settings
	MaxErrors int

	AutoAdvanceDelay   time.Duration
	RevealAdvanceDelay time.Duration

	// RestoreLastSelection checks the last played tracks at Start.
	RestoreLastSelection bool
}

// DefaultConfig returns the stock settings.
func DefaultConfig() Config {
	return Config{
		Playback:             playback.DefaultSettings(),
		Quiz:                 quiz.DefaultSettings(),
		MaxErrors:            playback.DefaultMaxErrorSkip,
		AutoAdvanceDelay:     quiz.DefaultAutoAdvanceDelay,
		RevealAdvanceDelay:   quiz.DefaultRevealAdvanceDelay,
		RestoreLastSelection: true,
	}
}

// Core is the explicit owner of all player state.
type Core struct {
	cat      *catalog.Catalog
	store    state.Interface
	lib      *library
	player   player.Interface
	timers   *timer.Registry
	sel      *selection.Reconciler
	playback *playback.Engine
	quiz     *quiz.Engine
	sink     notice.Sink
	log      zerolog.Logger
	cfg      Config

	mode    selection.Mode
	started bool
}

// Option configures a Core.
type Option func(*options)

type options struct {
	sink notice.Sink
	log  zerolog.Logger
	rng  *rand.Rand
	cfg  Config
}

func WithSink(s notice.Sink) Option { return func(o *options) { o.sink = s } }
func WithLogger(l zerolog.Logger) Option { return func(o *options) { o.log = l } }
func WithConfig(c Config) Option { return func(o *options) { o.cfg = c } }

// WithRand seeds shuffling in both engines.
func WithRand(r *rand.Rand) Option { return func(o *options) { o.rng = r } }

// New wires a Core around p. Timers scheduled by the quiz are delivered
// through clock, which must call back on the owning goroutine.
func New(cat *catalog.Catalog, st state.Interface, p player.Interface, clock timer.Clock, opts ...Option) *Core {
	o := options{
		sink: notice.Discard,
		log:  zerolog.Nop(),
		cfg:  DefaultConfig(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	lib := newLibrary(st)
	c := &Core{
		cat:    cat,
		store:  lib,
		lib:    lib,
		player: p,
		timers: timer.NewRegistry(clock),
		sel:    selection.New(cat, lib),
		sink:   o.sink,
		log:    o.log,
		cfg:    o.cfg,
	}

	pbOpts := []playback.Option{
		playback.WithHistory(lib),
		playback.WithSink(o.sink),
		playback.WithLogger(o.log.With().Str("component", "playback").Logger()),
		playback.WithMaxErrors(o.cfg.MaxErrors),
		playback.WithSettings(o.cfg.Playback),
	}
	quizOpts := []quiz.Option{
		quiz.WithSink(o.sink),
		quiz.WithLogger(o.log.With().Str("component", "quiz").Logger()),
		quiz.WithMaxErrors(o.cfg.MaxErrors),
		quiz.WithSettings(o.cfg.Quiz),
		quiz.WithAdvanceDelays(o.cfg.AutoAdvanceDelay, o.cfg.RevealAdvanceDelay),
	}
	if o.rng != nil {
		pbOpts = append(pbOpts, playback.WithRand(o.rng))
		quizOpts = append(quizOpts, quiz.WithRand(o.rng))
	}
	c.playback = playback.New(p, cat, pbOpts...)
	c.quiz = quiz.New(c.playback, p, quiz.PoolFunc(c.quizPool), c.timers, quizOpts...)

	p.OnEnded(c.onEnded)
	p.OnError(c.onError)
	p.OnPlaying(c.onPlaying)
	return c
}

// Start warns once when storage is unavailable and restores the last
// selection. Calling it again does nothing.
func (c *Core) Start() {
	if c.started {
		return
	}
	c.started = true
	if !c.store.Available() {
		c.sink.Notify(notice.Notice{
			Level: notice.Warn,
			Kind:  notice.KindStorageUnavailable,
			Text:  "Storage is unavailable. Playlists and history will not be saved.",
		})
		return
	}
	if c.cfg.RestoreLastSelection {
		if ids := c.store.LastSelection(); len(ids) > 0 {
			c.sel.SetTracks(ids)
			c.log.Debug().Int("tracks", len(ids)).Msg("restored last selection")
		}
	}
}

// ReloadLibrary drops the cached playlists and history so the next
// snapshot reads them from storage.
func (c *Core) ReloadLibrary() {
	c.lib.dropPlaylists()
	c.lib.dropRecent()
}

// Close stops audio, cancels timers and ends engine subscriptions.
func (c *Core) Close() {
	c.timers.CancelAll()
	c.player.Stop()
	c.playback.Close()
}

func (c *Core) quizPool() []int {
	return c.sel.ActiveFor(selection.Quiz)
}

// Media callbacks go to whichever engine owns the primitive.

func (c *Core) onEnded() {
	if c.mode == selection.Quiz {
		c.quiz.OnEnded()
		return
	}
	c.playback.OnEnded()
}

func (c *Core) onError(err error) {
	if c.mode == selection.Quiz {
		c.quiz.OnError(err)
		return
	}
	c.playback.OnError(err)
}

func (c *Core) onPlaying() {
	if c.mode == selection.Quiz {
		c.quiz.OnPlaying()
		return
	}
	c.playback.OnPlaying()
}

// Playback exposes the regular engine for event subscriptions.
func (c *Core) Playback() *playback.Engine { return c.playback }

func (c *Core) Catalog() *catalog.Catalog { return c.cat }

func (c *Core) Mode() selection.Mode { return c.mode }

func (c *Core) QuizMode() bool { return c.mode == selection.Quiz }
