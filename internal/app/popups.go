package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/shloka/internal/keymap"
	"github.com/llehouerou/shloka/internal/ui/action"
	"github.com/llehouerou/shloka/internal/ui/confirm"
	"github.com/llehouerou/shloka/internal/ui/helpbindings"
	"github.com/llehouerou/shloka/internal/ui/textinput"
)

// handleAction closes the popup that produced msg and applies its result.
func (m *Model) handleAction(msg action.Msg) tea.Cmd {
	m.popup = nil

	switch a := msg.Action.(type) {
	case helpbindings.Close:
		return nil

	case textinput.Result:
		k, ok := a.Context.(promptKind)
		if a.Canceled || !ok {
			return nil
		}
		return m.submitPrompt(k, a.Text)

	case confirm.Result:
		if !a.Confirmed {
			return nil
		}
		switch c := a.Context.(type) {
		case confirmClearSelection:
			m.core.ClearSelection()
			return m.info("Selection cleared")
		case confirmDeletePlaylist:
			m.report(keymap.ActionDeletePlaylist, m.core.DeletePlaylist(c.name))
		case confirmClearHistory:
			m.report(keymap.ActionClearHistory, m.core.ClearHistory())
		}
	}
	return nil
}
