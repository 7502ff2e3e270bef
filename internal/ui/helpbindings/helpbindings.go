// Package helpbindings provides a scrollable popup listing key bindings.
package helpbindings

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/shloka/internal/keymap"
	"github.com/llehouerou/shloka/internal/ui"
	"github.com/llehouerou/shloka/internal/ui/action"
	"github.com/llehouerou/shloka/internal/ui/popup"
	"github.com/llehouerou/shloka/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// Close signals the help popup should close.
type Close struct{}

func (Close) ActionType() string { return "helpbindings.close" }

func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "help", Action: a}
}

var categoryOrder = []string{
	keymap.ContextGlobal,
	keymap.ContextPlayback,
	keymap.ContextQuiz,
	keymap.ContextTracks,
	keymap.ContextLibrary,
}

var categoryLabels = map[string]string{
	keymap.ContextGlobal:   "Global",
	keymap.ContextPlayback: "Playback",
	keymap.ContextQuiz:     "Quiz",
	keymap.ContextTracks:   "Shlokas",
	keymap.ContextLibrary:  "Playlists & History",
}

// Model holds the state for the help popup.
type Model struct {
	ui.Base
	lines        []string
	scrollOffset int
}

func New() Model {
	return Model{}
}

// SetContexts selects which binding contexts to list.
func (m *Model) SetContexts(contexts []string) {
	var bindings []keymap.Binding
	for _, ctx := range categoryOrder {
		if slices.Contains(contexts, ctx) {
			bindings = append(bindings, keymap.ByContext(ctx)...)
		}
	}
	m.lines = buildLines(bindings)
	m.scrollOffset = 0
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "?", "esc", "q":
		return m, func() tea.Msg { return ActionMsg(Close{}) }
	case "j", "down":
		m.scrollOffset = min(m.scrollOffset+1, m.maxScroll())
	case "k", "up":
		m.scrollOffset = max(m.scrollOffset-1, 0)
	}
	return m, nil
}

func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	end := min(m.scrollOffset+m.visibleHeight(), len(m.lines))
	visible := m.lines[min(m.scrollOffset, end):end]

	footer := "?/esc close"
	if m.maxScroll() > 0 {
		footer = "j/k scroll · " + footer
	}

	s := styles.T().S()
	return s.Title.Render("Help") + "\n\n" +
		strings.Join(visible, "\n") + "\n\n" +
		s.Subtle.Render(footer)
}

func (m Model) visibleHeight() int {
	return max(m.Height()-10, 5)
}

func (m Model) maxScroll() int {
	return max(len(m.lines)-m.visibleHeight(), 0)
}

func keyLabel(keys []string) string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == " " {
			continue
		}
		out = append(out, k)
	}
	return strings.Join(out, ", ")
}

func buildLines(bindings []keymap.Binding) []string {
	t := styles.T()
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	headerStyle := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)

	keyWidth := 0
	for _, b := range bindings {
		keyWidth = max(keyWidth, len(keyLabel(b.Keys)))
	}

	var lines []string
	current := ""
	for _, b := range bindings {
		if b.Context != current {
			if current != "" {
				lines = append(lines, "")
			}
			lines = append(lines,
				headerStyle.Render(categoryLabels[b.Context]),
				t.S().Subtle.Render(strings.Repeat("─", keyWidth+20)))
			current = b.Context
		}
		k := keyLabel(b.Keys)
		lines = append(lines, keyStyle.Render(k+strings.Repeat(" ", keyWidth-len(k)))+"  "+t.S().Base.Render(b.Description))
	}
	return lines
}
