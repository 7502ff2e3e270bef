// Package mpris exposes the player to desktop media keys and applets over
// the MPRIS D-Bus interface.
package mpris

import (
	"context"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/shloka/internal/playback"
	"github.com/llehouerou/shloka/internal/player"
	"github.com/llehouerou/shloka/internal/session"
)

// callTimeout bounds how long a D-Bus request waits for the event loop.
const callTimeout = 2 * time.Second

// Caller runs fn on the goroutine that owns the core and waits for it.
type Caller interface {
	Call(ctx context.Context, fn func()) error
}

// bridge moves D-Bus requests onto the core's goroutine.
type bridge struct {
	caller Caller
	core   *session.Core
}

func (b *bridge) do(fn func(c *session.Core) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	var err error
	if callErr := b.caller.Call(ctx, func() { err = fn(b.core) }); callErr != nil {
		return callErr
	}
	return err
}

func (b *bridge) snapshot() (session.Snapshot, error) {
	var snap session.Snapshot
	err := b.do(func(c *session.Core) error {
		snap = c.Snapshot()
		return nil
	})
	return snap, err
}

func playbackStatus(snap session.Snapshot) types.PlaybackStatus {
	switch snap.Playback.Player {
	case player.Playing:
		return types.PlaybackStatusPlaying
	case player.Paused:
		return types.PlaybackStatusPaused
	default:
		return types.PlaybackStatusStopped
	}
}

func loopStatus(m playback.RepeatMode) types.LoopStatus {
	switch m {
	case playback.RepeatTrack, playback.RepeatEachN:
		return types.LoopStatusTrack
	case playback.RepeatPlaylist:
		return types.LoopStatusPlaylist
	default:
		return types.LoopStatusNone
	}
}

func repeatMode(s types.LoopStatus) playback.RepeatMode {
	switch s {
	case types.LoopStatusTrack:
		return playback.RepeatTrack
	case types.LoopStatusPlaylist:
		return playback.RepeatPlaylist
	default:
		return playback.RepeatNone
	}
}

// metadata describes the track being heard. A quiz question stays
// anonymous until its answer is shown.
func metadata(snap session.Snapshot) types.Metadata {
	if snap.QuizModeActive() {
		q := snap.Quiz
		if q.Track == 0 {
			return types.Metadata{}
		}
		title := fmt.Sprintf("Quiz question %d", q.Asked)
		if q.AnswerVisible() {
			title = fmt.Sprintf("Shlok %d", q.Track)
		}
		return types.Metadata{
			TrackId: trackID(q.Asked),
			Length:  types.Microseconds(snap.Playback.Duration.Microseconds()),
			Title:   title,
			Album:   "Quiz",
		}
	}

	pb := snap.Playback
	if pb.Track == 0 {
		return types.Metadata{}
	}
	return types.Metadata{
		TrackId:     trackID(pb.Track),
		Length:      types.Microseconds(pb.Duration.Microseconds()),
		Title:       fmt.Sprintf("Shlok %d", pb.Track),
		Album:       "Shloka",
		TrackNumber: pb.Index + 1,
	}
}

func trackID(n int) dbus.ObjectPath {
	return dbus.ObjectPath(fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%d", n))
}
