package popup

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestCompose_ReplacesOnlyVisibleColumns(t *testing.T) {
	base := "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc"
	top := "\n   XY\n"

	got := Compose(base, top, 10)

	lines := strings.Split(got, "\n")
	assert.Equal(t, "aaaaaaaaaa", lines[0])
	assert.Equal(t, "bbbXYbbbbb", ansi.Strip(lines[1]))
	assert.Equal(t, "cccccccccc", lines[2])
}

func TestCompose_PadsShortBaseLines(t *testing.T) {
	got := Compose("ab", "    Z", 6)
	assert.Equal(t, "ab  Z ", ansi.Strip(got))
}

func TestCenter(t *testing.T) {
	got := Center("xx\nxx", 6, 4)
	lines := strings.Split(got, "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "", lines[0])
	assert.Equal(t, "  xx", lines[1])
}

func TestRenderBordered_ContainsContent(t *testing.T) {
	got := ansi.Strip(RenderBordered("hello", 40, 12))
	assert.Contains(t, got, "hello")
	assert.Contains(t, got, "╭")
}
