package session

import (
	"time"

	"github.com/samber/lo"

	"github.com/llehouerou/shloka/internal/playback"
	"github.com/llehouerou/shloka/internal/player"
	"github.com/llehouerou/shloka/internal/quiz"
	"github.com/llehouerou/shloka/internal/selection"
	"github.com/llehouerou/shloka/internal/state"
)

// Snapshot is a read-only view of the core for rendering.
type Snapshot struct {
	Mode             selection.Mode
	Selection        selection.Selection
	SelectedTracks   []int
	CheckedPlaylists []string
	CheckedRecents   []string
	Groups           []selection.GroupStatus
	CanSave          bool
	StorageAvailable bool
	Playlists        []state.Playlist
	Recent           []state.RecentEntry
	Playback         PlaybackView
	Quiz             QuizView

	selected map[int]struct{}
}

// PlaybackView describes the regular session.
type PlaybackView struct {
	State      playback.State
	Track      int // 0 when no session is active
	Index      int
	Total      int
	Settings   playback.Settings
	Player     player.State
	Position   time.Duration
	Duration   time.Duration
	ErrorCount int
}

// QuizView describes the quiz.
type QuizView struct {
	State           quiz.State
	Track           int
	Asked           int
	Question        int
	PoolSize        int
	Remaining       int
	Settings        quiz.Settings
	PausedForAnswer bool
}

// AnswerVisible reports whether the asked track may be shown.
func (q QuizView) AnswerVisible() bool {
	return q.State == quiz.StateRevealed || q.State == quiz.StateTimedOut
}

// IsSelected reports whether track id is individually checked.
func (s Snapshot) IsSelected(id int) bool {
	_, ok := s.selected[id]
	return ok
}

// Snapshot captures the current state.
func (c *Core) Snapshot() Snapshot {
	selected := c.sel.SelectedTracks()
	snap := Snapshot{
		Mode:             c.mode,
		Selection:        c.sel.Current(),
		SelectedTracks:   selected,
		CheckedPlaylists: c.sel.Playlists(),
		CheckedRecents:   c.sel.Recents(),
		Groups:           c.sel.GroupStates(),
		CanSave:          c.CanSave(),
		StorageAvailable: c.store.Available(),
		Playlists:        c.store.Playlists(),
		Recent:           c.store.Recent(),
		selected:         lo.Keyify(selected),
	}

	cursor := c.playback.Cursor()
	track, _ := c.playback.Current()
	snap.Playback = PlaybackView{
		State:      c.playback.State(),
		Track:      track,
		Index:      cursor.Index,
		Total:      len(c.playback.Playlist()),
		Settings:   c.playback.Settings(),
		Player:     c.player.State(),
		Position:   c.player.Position(),
		Duration:   c.player.Duration(),
		ErrorCount: c.playback.ErrorCount(),
	}

	qTrack, _ := c.quiz.Current()
	question, pool := c.quiz.Progress()
	snap.Quiz = QuizView{
		State:           c.quiz.State(),
		Track:           qTrack,
		Asked:           c.quiz.Asked(),
		Question:        question,
		PoolSize:        pool,
		Remaining:       c.quiz.Remaining(),
		Settings:        c.quiz.Settings(),
		PausedForAnswer: c.quiz.HasPausedForAnswer(),
	}
	return snap
}

// QuizModeActive reports whether the snapshot was taken in quiz mode.
func (s Snapshot) QuizModeActive() bool {
	return s.Mode == selection.Quiz
}
