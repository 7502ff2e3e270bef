package app

import (
	"math/rand/v2"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/shloka/internal/catalog"
	"github.com/llehouerou/shloka/internal/notice"
	"github.com/llehouerou/shloka/internal/playback"
	"github.com/llehouerou/shloka/internal/player"
	"github.com/llehouerou/shloka/internal/session"
	"github.com/llehouerou/shloka/internal/state"
	"github.com/llehouerou/shloka/internal/store"
	"github.com/llehouerou/shloka/internal/timer/timertest"
	"github.com/llehouerou/shloka/internal/ui/action"
	"github.com/llehouerou/shloka/internal/ui/testutil"
)

type harness struct {
	t      *testing.T
	m      Model
	player *player.Mock
	clock  *timertest.Clock
	state  *state.Manager
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		t:      t,
		player: player.NewMock(),
		clock:  timertest.New(),
		state:  state.New(store.NewMemory()),
	}
	hub := notice.NewHub()
	core := session.New(catalog.Default(), h.state, h.player, h.clock,
		session.WithSink(hub),
		session.WithRand(rand.New(rand.NewPCG(7, 9))),
	)
	t.Cleanup(core.Close)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h.m = New(core, nil, hub, Options{Now: func() time.Time { return now }})
	t.Cleanup(h.m.Close)
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	m, ok := next.(Model)
	require.True(h.t, ok)
	h.m = m
	return cmd
}

func (h *harness) keys(keys ...string) tea.Cmd {
	h.t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = h.send(keyMsg(k))
	}
	return cmd
}

// submit runs a popup command and feeds its action back.
func (h *harness) submit(cmd tea.Cmd) tea.Cmd {
	h.t.Helper()
	require.NotNil(h.t, cmd)
	msg := cmd()
	_, ok := msg.(action.Msg)
	require.True(h.t, ok, "expected action.Msg, got %T", msg)
	return h.send(msg)
}

// drainNotices delivers every pending notice to the model.
func (h *harness) drainNotices() {
	for {
		select {
		case n := <-h.m.notices:
			h.send(NoticeMsg(n))
		default:
			return
		}
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestToggleGroupAndTrack(t *testing.T) {
	h := newHarness(t)

	h.keys("x")
	assert.Len(t, h.m.Snapshot().SelectedTracks, 10)

	h.keys("l", "l", "x")
	assert.NotContains(t, h.m.Snapshot().SelectedTracks, 2)
	assert.Len(t, h.m.Snapshot().SelectedTracks, 9)
}

func TestSpaceStartsPlayback(t *testing.T) {
	h := newHarness(t)

	h.keys("l", "x", " ")

	snap := h.m.Snapshot()
	assert.Equal(t, playback.StatePlaying, snap.Playback.State)
	assert.Equal(t, 1, snap.Playback.Track)
	assert.Equal(t, catalog.Default().URL(1), h.player.Source())
}

func TestEmptySelectionShowsToast(t *testing.T) {
	h := newHarness(t)

	h.keys(" ")
	h.drainNotices()

	require.True(t, h.m.toast.visible)
	assert.Equal(t, notice.KindEmptySelection, h.m.toast.n.Kind)

	h.send(ToastExpiredMsg{Seq: h.m.toast.seq - 1})
	assert.True(t, h.m.toast.visible, "stale expiry must not hide a newer toast")

	h.send(ToastExpiredMsg{Seq: h.m.toast.seq})
	assert.False(t, h.m.toast.visible)
}

func TestRangePrompt(t *testing.T) {
	h := newHarness(t)

	h.keys("r")
	require.NotNil(t, h.m.popup)
	h.keys("4-6")
	h.submit(h.keys("enter"))

	assert.Nil(t, h.m.popup)
	assert.Equal(t, []int{4, 5, 6}, h.m.Snapshot().SelectedTracks)
}

func TestRangePrompt_Cancel(t *testing.T) {
	h := newHarness(t)

	h.keys("r", "4-6")
	h.submit(h.keys("esc"))

	assert.Nil(t, h.m.popup)
	assert.Empty(t, h.m.Snapshot().SelectedTracks)
}

func TestSaveAndDeletePlaylist(t *testing.T) {
	h := newHarness(t)

	h.keys("l", "x", "l", "x")
	h.keys("w", "Morning")
	h.submit(h.keys("enter"))
	require.Len(t, h.state.Playlists(), 1)
	assert.Equal(t, []int{1, 2}, h.state.Playlists()[0].Tracks)

	h.keys("tab", "D")
	require.NotNil(t, h.m.popup)
	h.submit(h.keys("y"))

	assert.Empty(t, h.state.Playlists())
}

func TestSavePlaylist_NothingChecked(t *testing.T) {
	h := newHarness(t)

	h.keys("w")

	assert.Nil(t, h.m.popup)
	assert.True(t, h.m.toast.visible)
	assert.Equal(t, notice.KindEmptySelection, h.m.toast.n.Kind)
}

func TestLibraryToggleChecksPlaylist(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.state.SavePlaylist("Evening", []int{8, 9}))
	h.send(TickMsg(time.Now()))

	h.keys("tab", "x")
	assert.Equal(t, []string{"Evening"}, h.m.Snapshot().CheckedPlaylists)

	h.keys("x")
	assert.Empty(t, h.m.Snapshot().CheckedPlaylists)
}

func TestClearSelectionConfirm(t *testing.T) {
	h := newHarness(t)
	h.keys("x")

	h.keys("c")
	h.submit(h.keys("n"))
	assert.NotEmpty(t, h.m.Snapshot().SelectedTracks)

	h.keys("c")
	h.submit(h.keys("y"))
	assert.Empty(t, h.m.Snapshot().SelectedTracks)
}

func TestQuizMode_Keys(t *testing.T) {
	h := newHarness(t)
	h.keys("x")

	h.keys("m")
	require.True(t, h.m.Snapshot().QuizModeActive())

	h.keys("n")
	require.Len(t, h.player.Loads(), 1)

	h.keys("p")
	assert.Len(t, h.player.Loads(), 1, "previous is not bound in quiz mode")

	h.keys("A")
	assert.True(t, h.m.Snapshot().Quiz.Settings.AutoPlay)

	h.keys("m")
	assert.False(t, h.m.Snapshot().QuizModeActive())
	assert.Zero(t, h.clock.Pending())
}

func TestQuizTimePrompt_Validates(t *testing.T) {
	h := newHarness(t)
	h.keys("m", "t")
	require.NotNil(t, h.m.popup)

	// replace the prefilled value
	h.send(tea.KeyMsg{Type: tea.KeyBackspace})
	h.send(tea.KeyMsg{Type: tea.KeyBackspace})
	h.keys("999")
	assert.Nil(t, h.keys("enter"))
	require.NotNil(t, h.m.popup)

	for range 3 {
		h.send(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	h.keys("45")
	h.submit(h.keys("enter"))
	assert.Equal(t, 45, h.m.Snapshot().Quiz.Settings.Time)
}

func TestTaskMsg_RunsOnModelGoroutine(t *testing.T) {
	h := newHarness(t)

	ran := false
	h.send(TaskMsg{Run: func() { ran = true }})
	assert.True(t, ran)
}

func TestView(t *testing.T) {
	h := newHarness(t)

	out := testutil.StripANSI(h.m.View())
	assert.Contains(t, out, "Shloka")
	assert.Contains(t, out, "? help")
	assert.Contains(t, out, "[ ] 1–10")
	assert.Contains(t, out, "Playlists & History")

	h.keys("?")
	assert.Contains(t, testutil.StripANSI(h.m.View()), "Reveal answer")

	h.submit(h.keys("esc"))
	assert.Nil(t, h.m.popup)
}

func TestQuit(t *testing.T) {
	h := newHarness(t)
	cmd := h.keys("q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSearch_FiltersGrid(t *testing.T) {
	h := newHarness(t)

	h.keys("/", "7")
	h.submit(h.keys("enter"))
	assert.Equal(t, "7", h.m.grid.Filter())
	assert.Contains(t, testutil.StripANSI(h.m.View()), "7…")

	h.keys("l", "x")
	assert.Equal(t, []int{7}, h.m.Snapshot().SelectedTracks)

	h.keys("esc")
	assert.Empty(t, h.m.grid.Filter())
}

func TestSearch_NoMatch(t *testing.T) {
	h := newHarness(t)

	h.keys("/", "0")
	h.submit(h.keys("enter"))
	assert.Empty(t, h.m.grid.Filter())
	assert.True(t, h.m.toast.visible)
	assert.Equal(t, notice.Warn, h.m.toast.n.Level)
}

func TestSearch_RejectsLetters(t *testing.T) {
	h := newHarness(t)

	h.keys("/", "a")
	assert.Nil(t, h.keys("enter"))
	assert.NotNil(t, h.m.popup)
}
