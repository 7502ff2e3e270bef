// Package confirm provides a yes/no confirmation popup.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/shloka/internal/ui"
	"github.com/llehouerou/shloka/internal/ui/action"
	"github.com/llehouerou/shloka/internal/ui/popup"
	"github.com/llehouerou/shloka/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// Result is emitted once the user answers.
type Result struct {
	Confirmed bool
	Context   any
}

func (Result) ActionType() string { return "confirm.result" }

// ActionMsg wraps a confirm action for the app.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "confirm", Action: a}
}

// Model asks one destructive question.
type Model struct {
	ui.Base
	title   string
	message string
	context any
	active  bool
}

func New() Model {
	return Model{}
}

// Show opens the dialog. context is handed back in the Result.
func (m *Model) Show(title, message string, context any, width, height int) {
	m.title = title
	m.message = message
	m.context = context
	m.active = true
	m.SetSize(width, height)
}

func (m Model) Active() bool { return m.active }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !m.active || !ok {
		return m, nil
	}
	switch key.String() {
	case "enter", "y", "Y":
		return m, m.answer(true)
	case "esc", "n", "N":
		return m, m.answer(false)
	}
	return m, nil
}

func (m *Model) answer(yes bool) tea.Cmd {
	m.active = false
	res := Result{Confirmed: yes, Context: m.context}
	return func() tea.Msg { return ActionMsg(res) }
}

func (m *Model) View() string {
	if !m.active || m.Width() == 0 {
		return ""
	}
	s := styles.T().S()
	return s.Playing.Render(m.title) + "\n\n" +
		s.Base.Render(m.message) + "\n\n" +
		s.Subtle.Render("y/enter confirm · n/esc cancel")
}
