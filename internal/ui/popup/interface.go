// Package popup defines modal components and renders them over the main view.
package popup

import tea "github.com/charmbracelet/bubbletea"

// Popup is a modal component. While one is open it receives every key.
type Popup interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Popup, tea.Cmd)
	// View renders the content without border or centering.
	View() string
	SetSize(width, height int)
}
