package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/shloka/internal/notice"
)

// TaskMsg carries one function posted to the event loop.
type TaskMsg struct {
	Run func()
}

// NoticeMsg carries a notice emitted by the core.
type NoticeMsg notice.Notice

// TickMsg refreshes the playback position and quiz countdown.
type TickMsg time.Time

// ToastExpiredMsg hides the toast it was scheduled for.
type ToastExpiredMsg struct {
	Seq int
}

type loopClosedMsg struct{}

func waitForTask(tasks <-chan func()) tea.Cmd {
	if tasks == nil {
		return nil
	}
	return func() tea.Msg {
		fn, ok := <-tasks
		if !ok {
			return loopClosedMsg{}
		}
		return TaskMsg{Run: fn}
	}
}

func waitForNotice(ch <-chan notice.Notice) tea.Cmd {
	return func() tea.Msg {
		return NoticeMsg(<-ch)
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
