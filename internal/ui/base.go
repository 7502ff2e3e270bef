package ui

// Base carries the size and focus shared by every component. Embed it in
// component models.
type Base struct {
	width, height int
	focused       bool
}

func (b *Base) SetFocused(focused bool) { b.focused = focused }

func (b Base) IsFocused() bool { return b.focused }

func (b *Base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

func (b Base) Width() int { return b.width }

func (b Base) Height() int { return b.height }

// InnerHeight returns the rows left for content inside a bordered panel
// with a header line.
func (b Base) InnerHeight() int {
	return max(b.height-PanelOverhead, 0)
}
