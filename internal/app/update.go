package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/shloka/internal/keymap"
	"github.com/llehouerou/shloka/internal/notice"
	"github.com/llehouerou/shloka/internal/ui/action"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case TaskMsg:
		msg.Run()
		m.refresh()
		return m, waitForTask(m.tasks)

	case loopClosedMsg:
		return m, tea.Quit

	case NoticeMsg:
		cmd := m.showToast(notice.Notice(msg))
		m.refresh()
		return m, tea.Batch(cmd, waitForNotice(m.notices))

	case ToastExpiredMsg:
		m.expireToast(msg.Seq)
		return m, nil

	case TickMsg:
		m.refresh()
		return m, tick()

	case action.Msg:
		cmd := m.handleAction(msg)
		m.refresh()
		return m, cmd

	case tea.KeyMsg:
		if m.popup != nil {
			var cmd tea.Cmd
			m.popup, cmd = m.popup.Update(msg)
			return m, cmd
		}
		cmd := m.handleKey(msg.String())
		m.refresh()
		return m, cmd
	}

	if m.popup != nil {
		var cmd tea.Cmd
		m.popup, cmd = m.popup.Update(msg)
		return m, cmd
	}
	return m, nil
}

// contexts returns the binding contexts active for the current mode and
// focused panel, most specific first.
func (m Model) contexts() []string {
	mode := keymap.ContextPlayback
	if m.snap.QuizModeActive() {
		mode = keymap.ContextQuiz
	}
	panel := keymap.ContextTracks
	if m.focus == FocusLibrary {
		panel = keymap.ContextLibrary
	}
	return []string{mode, panel}
}

func (m *Model) handleKey(key string) tea.Cmd {
	a := m.resolver.Resolve(key, m.contexts()...)
	if a == "" {
		return nil
	}
	if m.focus == FocusLibrary && m.library.HandleKey(key) {
		return nil
	}
	if m.focus == FocusTracks && m.grid.HandleAction(a) {
		return nil
	}
	return m.dispatch(a)
}

func (m *Model) layout() {
	panelH := max(m.height-chromeHeight, 0)
	sideW := min(sidePanelWidth, m.width/3)
	m.grid.SetSize(max(m.width-sideW, 0), panelH)
	m.library.SetSize(sideW, panelH)
	m.library.SetEntries(m.libraryView())
}

func (m *Model) switchFocus() {
	if m.focus == FocusTracks {
		m.focus = FocusLibrary
		// Pick up playlists another process imported.
		m.core.ReloadLibrary()
	} else {
		m.focus = FocusTracks
	}
	m.grid.SetFocused(m.focus == FocusTracks)
	m.library.SetFocused(m.focus == FocusLibrary)
}
