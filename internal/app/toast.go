package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/shloka/internal/notice"
	"github.com/llehouerou/shloka/internal/ui/render"
	"github.com/llehouerou/shloka/internal/ui/styles"
)

// toast is the single message line above the player bar. Each new notice
// replaces the previous one and restarts its timer.
type toast struct {
	seq     int
	visible bool
	n       notice.Notice
}

func (m *Model) showToast(n notice.Notice) tea.Cmd {
	m.toast.seq++
	m.toast.visible = true
	m.toast.n = n
	seq := m.toast.seq
	return tea.Tick(m.toastDuration, func(_ time.Time) tea.Msg {
		return ToastExpiredMsg{Seq: seq}
	})
}

func (m *Model) info(text string) tea.Cmd {
	return m.showToast(notice.Infof(text))
}

func (m *Model) expireToast(seq int) {
	if seq == m.toast.seq {
		m.toast.visible = false
	}
}

func (m Model) renderToast(width int) string {
	if !m.toast.visible {
		return ""
	}
	s := styles.T().S()
	text := render.Truncate(m.toast.n.Text, width)
	switch m.toast.n.Level {
	case notice.Error:
		return s.Error.Render(text)
	case notice.Warn:
		return s.Warning.Render(text)
	default:
		return s.Success.Render(text)
	}
}
