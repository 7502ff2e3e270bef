package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/llehouerou/shloka/internal/ui/styles"
)

func progressBar(position, duration time.Duration, width int) string {
	var ratio float64
	if duration > 0 {
		ratio = float64(position) / float64(duration)
	}
	filled := min(int(float64(width)*ratio), width)
	t := styles.T()
	return t.S().Playing.Render(strings.Repeat("━", filled)) +
		t.S().Subtle.Render(strings.Repeat("─", width-filled))
}

// countdown draws the seconds left to answer as a shrinking bar.
func countdown(remaining, total, width int) string {
	width = max(width, 5)
	filled := width
	if total > 0 {
		filled = min(width*remaining/total, width)
	}
	t := styles.T().S()
	style := t.Quiz
	if remaining <= 5 {
		style = t.Error
	}
	return style.Render(strings.Repeat("▓", filled)) +
		t.Subtle.Render(strings.Repeat("░", width-filled)) +
		" " + style.Render(fmt.Sprintf("%ds", remaining))
}
