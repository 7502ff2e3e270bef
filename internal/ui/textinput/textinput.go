// Package textinput provides a single-line prompt popup.
package textinput

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/shloka/internal/ui"
	"github.com/llehouerou/shloka/internal/ui/action"
	"github.com/llehouerou/shloka/internal/ui/popup"
	"github.com/llehouerou/shloka/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// Result carries the submitted text.
type Result struct {
	Text     string
	Context  any
	Canceled bool
}

func (Result) ActionType() string { return "textinput.result" }

// ActionMsg wraps a textinput action for the app.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "textinput", Action: a}
}

// Validator rejects a submission. The prompt stays open and shows the error.
type Validator func(string) error

// Model is a titled prompt over a bubbles text input.
type Model struct {
	ui.Base
	title    string
	context  any
	input    textinput.Model
	validate Validator
	err      error
}

func New() Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 64
	ti.Width = 40
	return Model{input: ti}
}

// Start opens the prompt with an initial value. validate may be nil.
func (m *Model) Start(title, initial, placeholder string, context any, validate Validator, width, height int) {
	m.title = title
	m.context = context
	m.validate = validate
	m.err = nil
	m.input.Placeholder = placeholder
	m.input.SetValue(initial)
	m.input.CursorEnd()
	m.input.Focus()
	m.SetSize(width, height)
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, m.finish(Result{Canceled: true, Context: m.context})
		case "enter":
			text := m.input.Value()
			if m.validate != nil {
				if err := m.validate(text); err != nil {
					m.err = err
					return m, nil
				}
			}
			return m, m.finish(Result{Text: text, Context: m.context})
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		m.err = nil
	}
	return m, cmd
}

func (m *Model) finish(r Result) tea.Cmd {
	m.input.Blur()
	return func() tea.Msg { return ActionMsg(r) }
}

// Value returns the text typed so far.
func (m *Model) Value() string {
	return m.input.Value()
}

func (m *Model) View() string {
	if m.Width() == 0 {
		return ""
	}
	s := styles.T().S()
	out := s.Playing.Render(m.title) + "\n\n" + m.input.View() + "\n"
	if m.err != nil {
		out += "\n" + s.Error.Render(m.err.Error()) + "\n"
	}
	return out + "\n" + s.Subtle.Render("enter confirm · esc cancel")
}
