// Package playerbar renders the now-playing line at the bottom of the screen.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/shloka/internal/icons"
	"github.com/llehouerou/shloka/internal/playback"
	"github.com/llehouerou/shloka/internal/player"
	"github.com/llehouerou/shloka/internal/quiz"
	"github.com/llehouerou/shloka/internal/session"
	"github.com/llehouerou/shloka/internal/ui"
	"github.com/llehouerou/shloka/internal/ui/styles"
)

// Height is the bar height including its border.
const Height = 3

// State holds everything needed to render the bar.
type State struct {
	QuizMode bool
	Player   player.State
	Label    string
	Position time.Duration
	Duration time.Duration
	Settings playback.Settings

	// regular mode
	Session  playback.State
	Index    int
	Total    int
	Failures int

	// quiz mode
	QuizState    quiz.State
	QuizSettings quiz.Settings
	Remaining    int
	Question     int
	PoolSize     int
}

// NewState builds the bar state from a core snapshot.
func NewState(s session.Snapshot) State {
	st := State{
		QuizMode: s.QuizModeActive(),
		Player:   s.Playback.Player,
		Position: s.Playback.Position,
		Duration: s.Playback.Duration,
		Settings: s.Playback.Settings,
	}
	if st.QuizMode {
		q := s.Quiz
		st.QuizState = q.State
		st.QuizSettings = q.Settings
		st.Remaining = q.Remaining
		st.Question = q.Question
		st.PoolSize = q.PoolSize
		switch {
		case q.Track == 0:
		case q.AnswerVisible():
			st.Label = fmt.Sprintf("Shlok %d", q.Track)
		default:
			st.Label = "Shlok ?"
		}
		return st
	}

	p := s.Playback
	st.Session = p.State
	st.Index = p.Index
	st.Total = p.Total
	st.Failures = p.ErrorCount
	if p.Track > 0 {
		st.Label = fmt.Sprintf("Shlok %d", p.Track)
	}
	return st
}

// Render returns the bar for the given width.
func Render(s State, width int) string {
	inner := max(width-6, 0)
	var line string
	if s.QuizMode {
		line = renderQuiz(s, inner)
	} else {
		line = renderRegular(s, inner)
	}
	return styles.PanelStyle(false).Padding(0, 2).Width(max(width-2, 0)).Render(line)
}

func status(p player.State) string {
	switch p {
	case player.Playing:
		return icons.Play()
	case player.Paused:
		return icons.Pause()
	default:
		return icons.Stop()
	}
}

func renderRegular(s State, width int) string {
	t := styles.T().S()
	left := t.Muted.Render(s.Session.String())
	if s.Label != "" {
		left = t.Playing.Render(s.Label) + "  " + t.Muted.Render(fmt.Sprintf("%d/%d", s.Index+1, s.Total))
	}
	if s.Failures > 0 {
		left += "  " + t.Warning.Render(fmt.Sprintf("%d failed", s.Failures))
	}
	right := t.Subtle.Render(settingsLabel(s.Settings))
	return withProgress(left, right, s, width)
}

func renderQuiz(s State, width int) string {
	t := styles.T().S()
	left := t.Quiz.Render("QUIZ")
	if s.PoolSize > 0 {
		left += "  " + t.Muted.Render(fmt.Sprintf("Q%d/%d", s.Question, s.PoolSize))
	}
	if s.Label != "" {
		left += "  " + t.Playing.Render(s.Label)
	}

	switch s.QuizState {
	case quiz.StateListening:
		if s.Remaining > 0 {
			left += "  " + countdown(s.Remaining, s.QuizSettings.Time, width/4)
		} else {
			left += "  " + t.Muted.Render("listening")
		}
	case quiz.StateTimedOut:
		left += "  " + t.Error.Render("time's up")
	case quiz.StateRevealed:
		left += "  " + t.Success.Render("revealed")
	case quiz.StatePaused:
		left += "  " + t.Muted.Render("paused")
	case quiz.StateLoading:
		left += "  " + t.Muted.Render("loading")
	}

	auto := "manual"
	if s.QuizSettings.AutoPlay {
		auto = "autoplay"
	}
	right := t.Subtle.Render(fmt.Sprintf("%ds · delay %ds · %s · %s",
		s.QuizSettings.Time, s.QuizSettings.Delay, auto, playback.FormatSpeed(s.Settings.Speed)))
	return left + gap(left, right, width) + right
}

func withProgress(left, right string, s State, width int) string {
	timeStr := fmt.Sprintf("%s / %s", formatDuration(s.Position), formatDuration(s.Duration))
	fixed := lipgloss.Width(left) + lipgloss.Width(right) + lipgloss.Width(timeStr) + 10
	barWidth := width - fixed
	if barWidth < ui.MinProgressBarWidth {
		return left + gap(left, right, width) + right
	}
	mid := status(s.Player) + "  " + progressBar(s.Position, s.Duration, barWidth) + "  " + timeStr
	return left + "   " + mid + gap(left+"   "+mid, right, width) + right
}

func gap(left, right string, width int) string {
	return strings.Repeat(" ", max(width-lipgloss.Width(left)-lipgloss.Width(right), 1))
}

func settingsLabel(s playback.Settings) string {
	parts := []string{playback.FormatSpeed(s.Speed)}
	switch s.Repeat {
	case playback.RepeatNone:
	case playback.RepeatEachN:
		parts = append(parts, fmt.Sprintf("repeat each ×%d", s.RepeatEach))
	default:
		parts = append(parts, "repeat "+strings.ToLower(s.Repeat.String()))
	}
	if s.Shuffle {
		parts = append(parts, "shuffle")
	}
	return strings.Join(parts, " · ")
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
