//go:build linux

package mpris

import (
	"errors"

	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/rs/zerolog"

	"github.com/llehouerou/shloka/internal/playback"
	"github.com/llehouerou/shloka/internal/player"
	"github.com/llehouerou/shloka/internal/session"
)

var errUnsupported = errors.New("not supported")

// Adapter connects the session core to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
	log    zerolog.Logger
}

// New creates and starts a new MPRIS adapter. Requests are run on the core
// through caller.
func New(caller Caller, core *session.Core, log zerolog.Logger) (*Adapter, error) {
	b := &bridge{caller: caller, core: core}
	a := &Adapter{
		server: server.NewServer("shloka", &rootAdapter{}, &playerAdapter{b: b}),
		log:    log,
	}

	// Start the server in background
	go func() {
		if err := a.server.Listen(); err != nil {
			a.log.Debug().Err(err).Msg("mpris server stopped")
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error { return nil }
func (r *rootAdapter) Quit() error { return nil }
func (r *rootAdapter) CanQuit() (bool, error) { return false, nil }
func (r *rootAdapter) CanRaise() (bool, error) { return false, nil }
func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }
func (r *rootAdapter) Identity() (string, error) { return "Shloka", nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/mp3"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and optional interfaces.
type playerAdapter struct {
	b *bridge
}

func (p *playerAdapter) Next() error {
	return p.b.do((*session.Core).Next)
}

func (p *playerAdapter) Previous() error {
	return p.b.do((*session.Core).Previous)
}

func (p *playerAdapter) Pause() error {
	return p.b.do(func(c *session.Core) error {
		if c.Snapshot().Playback.Player.IsActive() {
			return c.PauseResume()
		}
		return nil
	})
}

func (p *playerAdapter) PlayPause() error {
	return p.b.do((*session.Core).PauseResume)
}

func (p *playerAdapter) Stop() error {
	return p.Pause()
}

func (p *playerAdapter) Play() error {
	return p.b.do(func(c *session.Core) error {
		snap := c.Snapshot()
		if snap.Playback.Player == player.Playing {
			return nil
		}
		return c.PauseResume()
	})
}

func (p *playerAdapter) Seek(types.Microseconds) error { return errUnsupported }

func (p *playerAdapter) SetPosition(string, types.Microseconds) error { return errUnsupported }

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(string) error { return errUnsupported }

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	snap, err := p.b.snapshot()
	if err != nil {
		return types.PlaybackStatusStopped, err
	}
	return playbackStatus(snap), nil
}

func (p *playerAdapter) Rate() (float64, error) {
	snap, err := p.b.snapshot()
	if err != nil {
		return 1.0, err
	}
	return snap.Playback.Settings.Speed, nil
}

func (p *playerAdapter) SetRate(rate float64) error {
	return p.b.do(func(c *session.Core) error { return c.SetSpeed(rate) })
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	snap, err := p.b.snapshot()
	if err != nil {
		return types.Metadata{}, err
	}
	return metadata(snap), nil
}

func (p *playerAdapter) Volume() (float64, error) { return 1.0, nil }
func (p *playerAdapter) SetVolume(float64) error { return errUnsupported }

func (p *playerAdapter) Position() (int64, error) {
	snap, err := p.b.snapshot()
	if err != nil {
		return 0, err
	}
	return snap.Playback.Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return playback.Speeds[0], nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return playback.Speeds[len(playback.Speeds)-1], nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	snap, err := p.b.snapshot()
	if err != nil {
		return false, err
	}
	return snap.QuizModeActive() || snap.Playback.State.IsActive(), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	snap, err := p.b.snapshot()
	if err != nil {
		return false, err
	}
	return !snap.QuizModeActive() && snap.Playback.State.IsActive(), nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	snap, err := p.b.snapshot()
	if err != nil {
		return false, err
	}
	return len(snap.SelectedTracks) > 0 || snap.Selection != nil || snap.Playback.State.IsActive(), nil
}

func (p *playerAdapter) CanPause() (bool, error) { return true, nil }
func (p *playerAdapter) CanSeek() (bool, error) { return false, nil }
func (p *playerAdapter) CanControl() (bool, error) { return true, nil }

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	snap, err := p.b.snapshot()
	if err != nil {
		return types.LoopStatusNone, err
	}
	return loopStatus(snap.Playback.Settings.Repeat), nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	return p.b.do(func(c *session.Core) error { return c.SetRepeatMode(repeatMode(status)) })
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	snap, err := p.b.snapshot()
	if err != nil {
		return false, err
	}
	return snap.Playback.Settings.Shuffle, nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	return p.b.do(func(c *session.Core) error {
		if c.Snapshot().Playback.Settings.Shuffle != shuffle {
			c.ToggleShuffle()
		}
		return nil
	})
}
