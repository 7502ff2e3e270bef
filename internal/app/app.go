// Package app is the terminal front end. It renders core snapshots and turns
// key presses into core intents. The bubbletea goroutine drains the event
// loop, so every core call made from Update is already serialized with
// player and timer callbacks.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/shloka/internal/keymap"
	"github.com/llehouerou/shloka/internal/notice"
	"github.com/llehouerou/shloka/internal/session"
	"github.com/llehouerou/shloka/internal/ui/confirm"
	"github.com/llehouerou/shloka/internal/ui/helpbindings"
	"github.com/llehouerou/shloka/internal/ui/librarypanel"
	"github.com/llehouerou/shloka/internal/ui/popup"
	"github.com/llehouerou/shloka/internal/ui/textinput"
	"github.com/llehouerou/shloka/internal/ui/trackgrid"
)

const (
	noticeBuffer     = 32
	refreshInterval  = 250 * time.Millisecond
	defaultToastTime = 4 * time.Second
)

// FocusTarget is the panel receiving navigation keys.
type FocusTarget int

const (
	FocusTracks FocusTarget = iota
	FocusLibrary
)

// Options tune the front end.
type Options struct {
	ToastDuration time.Duration
	Logger        zerolog.Logger
	Now           func() time.Time
}

// Model is the root bubbletea model.
type Model struct {
	core        *session.Core
	tasks       <-chan func()
	notices     chan notice.Notice
	unsubscribe func()
	resolver    *keymap.Resolver

	grid    trackgrid.Model
	library librarypanel.Model
	focus   FocusTarget

	popup   popup.Popup
	confirm *confirm.Model
	input   *textinput.Model
	help    *helpbindings.Model

	toast         toast
	toastDuration time.Duration

	snap          session.Snapshot
	width, height int
	log           zerolog.Logger
	now           func() time.Time
}

// New builds the front end over core. tasks is the event loop queue and hub
// the notice fan-out the core reports to.
func New(core *session.Core, tasks <-chan func(), hub *notice.Hub, opts Options) Model {
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = defaultToastTime
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := confirm.New()
	in := textinput.New()
	h := helpbindings.New()

	m := Model{
		core:          core,
		tasks:         tasks,
		notices:       make(chan notice.Notice, noticeBuffer),
		resolver:      keymap.NewResolver(keymap.Bindings),
		grid:          trackgrid.New(core.Catalog()),
		library:       librarypanel.New(),
		confirm:       &c,
		input:         &in,
		help:          &h,
		toastDuration: opts.ToastDuration,
		log:           opts.Logger,
		now:           opts.Now,
	}
	m.unsubscribe = hub.Subscribe(notice.SinkFunc(m.enqueueNotice))
	m.grid.SetFocused(true)
	m.refresh()
	return m
}

// enqueueNotice runs inside core intents. It never blocks; when the
// buffer is full the notice is dropped.
func (m Model) enqueueNotice(n notice.Notice) {
	select {
	case m.notices <- n:
	default:
		m.log.Warn().Str("text", n.Text).Msg("notice dropped")
	}
}

// Close detaches the model from the notice hub.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForTask(m.tasks),
		waitForNotice(m.notices),
		tick(),
	)
}

// refresh takes a fresh snapshot and feeds the panels.
func (m *Model) refresh() {
	m.snap = m.core.Snapshot()
	m.library.SetEntries(m.libraryView())
}

func (m Model) libraryView() librarypanel.View {
	return librarypanel.View{
		Playlists:        m.snap.Playlists,
		Recent:           m.snap.Recent,
		CheckedPlaylists: m.snap.CheckedPlaylists,
		CheckedRecents:   m.snap.CheckedRecents,
		StorageAvailable: m.snap.StorageAvailable,
		Now:              m.now(),
	}
}

// Snapshot returns the state the model last rendered.
func (m Model) Snapshot() session.Snapshot {
	return m.snap
}
