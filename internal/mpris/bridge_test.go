package mpris

import (
	"context"
	"testing"

	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/shloka/internal/catalog"
	"github.com/llehouerou/shloka/internal/playback"
	"github.com/llehouerou/shloka/internal/player"
	"github.com/llehouerou/shloka/internal/session"
	"github.com/llehouerou/shloka/internal/state"
	"github.com/llehouerou/shloka/internal/store"
	"github.com/llehouerou/shloka/internal/timer/timertest"
)

// inline runs calls on the test goroutine.
type inline struct{}

func (inline) Call(_ context.Context, fn func()) error {
	fn()
	return nil
}

func newBridge(t *testing.T) (*bridge, *player.Mock) {
	t.Helper()
	p := player.NewMock()
	core := session.New(catalog.Default(), state.New(store.NewMemory()), p, timertest.New())
	t.Cleanup(core.Close)
	return &bridge{caller: inline{}, core: core}, p
}

func TestLoopStatusRoundTrip(t *testing.T) {
	for _, m := range []playback.RepeatMode{playback.RepeatNone, playback.RepeatTrack, playback.RepeatPlaylist} {
		assert.Equal(t, m, repeatMode(loopStatus(m)), m.String())
	}
	assert.Equal(t, types.LoopStatusTrack, loopStatus(playback.RepeatEachN))
}

func TestBridge_PlaybackStatusAndMetadata(t *testing.T) {
	b, p := newBridge(t)

	snap, err := b.snapshot()
	require.NoError(t, err)
	assert.Equal(t, types.PlaybackStatusStopped, playbackStatus(snap))
	assert.Equal(t, types.Metadata{}, metadata(snap))

	require.NoError(t, b.do(func(c *session.Core) error { return c.ApplyRange(4, 5) }))
	require.NoError(t, b.do((*session.Core).PauseResume))

	snap, err = b.snapshot()
	require.NoError(t, err)
	assert.Equal(t, types.PlaybackStatusPlaying, playbackStatus(snap))
	meta := metadata(snap)
	assert.Equal(t, "Shlok 4", meta.Title)
	assert.Equal(t, 1, meta.TrackNumber)

	p.Pause()
	snap, err = b.snapshot()
	require.NoError(t, err)
	assert.Equal(t, types.PlaybackStatusPaused, playbackStatus(snap))
}

func TestMetadata_HidesQuizAnswer(t *testing.T) {
	b, _ := newBridge(t)
	require.NoError(t, b.do(func(c *session.Core) error {
		c.EnterQuizMode()
		if err := c.SelectTrack(12, true); err != nil {
			return err
		}
		return c.QuizPlayNext()
	}))

	snap, err := b.snapshot()
	require.NoError(t, err)
	assert.Equal(t, "Quiz question 1", metadata(snap).Title)

	require.NoError(t, b.do((*session.Core).QuizRevealAnswer))
	snap, err = b.snapshot()
	require.NoError(t, err)
	assert.Equal(t, "Shlok 12", metadata(snap).Title)
}
