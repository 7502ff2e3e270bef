// Package action defines how popups report results to the app.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action is a result emitted by a UI component.
type Action interface {
	ActionType() string
}

// Msg wraps an action with the name of the component that produced it.
type Msg struct {
	Source string // "confirm", "textinput", "help"
	Action Action
}

var _ tea.Msg = Msg{}
