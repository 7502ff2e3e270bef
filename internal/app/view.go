package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/shloka/internal/catalog"
	"github.com/llehouerou/shloka/internal/icons"
	"github.com/llehouerou/shloka/internal/selection"
	"github.com/llehouerou/shloka/internal/ui"
	"github.com/llehouerou/shloka/internal/ui/playerbar"
	"github.com/llehouerou/shloka/internal/ui/popup"
	"github.com/llehouerou/shloka/internal/ui/render"
	"github.com/llehouerou/shloka/internal/ui/styles"
	"github.com/llehouerou/shloka/internal/ui/trackgrid"
)

// header + toast + player bar
const chromeHeight = 2 + playerbar.Height

const sidePanelWidth = ui.SidePanelWidth

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		m.grid.Render(m.gridView()),
		m.library.Render(m.libraryView()),
	)
	base := strings.Join([]string{
		m.renderHeader(),
		panels,
		m.renderToast(m.width),
		playerbar.Render(playerbar.NewState(m.snap), m.width),
	}, "\n")

	if m.popup == nil {
		return base
	}
	return popup.Compose(base, popup.RenderBordered(m.popup.View(), m.width, m.height), m.width)
}

func (m Model) gridView() trackgrid.View {
	playing := m.snap.Playback.Track
	if m.snap.QuizModeActive() {
		playing = 0
		if m.snap.Quiz.AnswerVisible() {
			playing = m.snap.Quiz.Track
		}
	}
	title := fmt.Sprintf("Shlokas · %d checked", len(m.snap.SelectedTracks))
	if f := m.grid.Filter(); f != "" {
		title += fmt.Sprintf(" · %s…", f)
	}
	return trackgrid.View{
		Selected: m.snap.IsSelected,
		Groups:   m.snap.Groups,
		Playing:  playing,
		Title:    title,
	}
}

func (m Model) renderHeader() string {
	s := styles.T().S()
	mode := s.Muted.Render("Regular")
	if m.snap.QuizModeActive() {
		mode = s.Quiz.Render(icons.FormatQuiz("Quiz"))
	}
	left := s.Playing.Render("Shloka") + "  " + mode + "  " + s.Subtle.Render(m.selectionLabel())
	return render.Row(left, s.Subtle.Render("? help"), m.width)
}

func (m Model) selectionLabel() string {
	switch sel := m.snap.Selection.(type) {
	case selection.Tracks:
		return catalog.Label(sel.IDs)
	case selection.Playlist:
		return fmt.Sprintf("Playlist %q", sel.Name)
	case selection.Recent:
		for _, r := range m.snap.Recent {
			if r.ID == sel.ID {
				return r.Label
			}
		}
		return "Recent selection"
	default:
		return "Nothing selected"
	}
}
