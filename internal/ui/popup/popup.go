package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/shloka/internal/ui/styles"
)

// RenderBordered wraps content in a rounded border and centers it on a
// screen of the given size.
func RenderBordered(content string, screenW, screenH int) string {
	width := min(maxLineWidth(content)+6, screenW-4)
	height := min(strings.Count(content, "\n")+5, screenH-4)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().BorderFocus).
		Width(max(width-2, 1)).
		Height(max(height-2, 1)).
		Padding(1, 2).
		Render(content)
	return Center(box, screenW, screenH)
}

// Center places pre-rendered content in the middle of the screen.
func Center(box string, screenW, screenH int) string {
	lines := strings.Split(box, "\n")
	padTop := max((screenH-len(lines))/2, 0)
	padLeft := max((screenW-maxLineWidth(box))/2, 0)

	var b strings.Builder
	for range padTop {
		b.WriteString("\n")
	}
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.Repeat(" ", padLeft))
		b.WriteString(line)
	}
	return b.String()
}

// Compose draws the visible part of top over base. Blank overlay rows and
// leading spaces leave the base untouched.
func Compose(base, top string, width int) string {
	baseLines := strings.Split(base, "\n")

	for i, line := range strings.Split(top, "\n") {
		if i >= len(baseLines) {
			break
		}
		plain := ansi.Strip(line)
		if strings.TrimSpace(plain) == "" {
			continue
		}
		start := len(plain) - len(strings.TrimLeft(plain, " "))
		end := ansi.StringWidth(strings.TrimRight(plain, " "))

		under := baseLines[i]
		if w := ansi.StringWidth(under); w < width {
			under += strings.Repeat(" ", width-w)
		}
		prefix := ansi.Truncate(under, start, "")
		if w := ansi.StringWidth(prefix); w < start {
			prefix += strings.Repeat(" ", start-w)
		}
		row := prefix + ansi.Cut(line, start, end)
		if end < width {
			row += ansi.Cut(under, end, width)
		}
		baseLines[i] = row
	}
	return strings.Join(baseLines, "\n")
}

func maxLineWidth(s string) int {
	w := 0
	for line := range strings.SplitSeq(s, "\n") {
		w = max(w, lipgloss.Width(line))
	}
	return w
}
