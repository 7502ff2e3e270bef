// Package trackgrid renders the catalog as rows of groups with checkable
// shloka cells.
package trackgrid

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/llehouerou/shloka/internal/catalog"
	"github.com/llehouerou/shloka/internal/keymap"
	"github.com/llehouerou/shloka/internal/selection"
	"github.com/llehouerou/shloka/internal/ui"
	"github.com/llehouerou/shloka/internal/ui/cursor"
	"github.com/llehouerou/shloka/internal/ui/render"
	"github.com/llehouerou/shloka/internal/ui/styles"
)

// line is one visual row: a slice of a group's tracks.
type line struct {
	group  catalog.Group
	first  bool // carries the group check box
	tracks []int
}

// Target is what the cursor points at. Exactly one field is non-zero.
type Target struct {
	Group int
	Track int
}

// View carries the selection state the grid draws.
type View struct {
	Selected func(id int) bool
	Groups   []selection.GroupStatus
	Playing  int // 0 when nothing should be highlighted
	Title    string
}

// Model is the shloka grid.
type Model struct {
	ui.Base
	cat    *catalog.Catalog
	lines  []line
	cur    cursor.Cursor
	col    int    // 0 is the group box, 1.. are track cells
	filter string // number prefix, empty shows every track
}

func New(cat *catalog.Catalog) Model {
	m := Model{cat: cat, cur: cursor.New(ui.ScrollMargin)}
	m.layout()
	return m
}

// SetSize relays out the grid for a new width.
func (m *Model) SetSize(width, height int) {
	target := m.Target()
	m.Base.SetSize(width, height)
	m.layout()
	m.focus(target)
}

func (m Model) perLine() int {
	if m.Width() == 0 {
		return m.cat.GroupSize()
	}
	inner := m.Width() - ui.BorderHeight - ui.GroupLabelWidth
	return max(inner/ui.CellWidth, 1)
}

func (m *Model) layout() {
	n := m.perLine()
	m.lines = nil
	for _, g := range m.cat.Groups() {
		ids := m.visible(g)
		for start := 0; start < len(ids); start += n {
			tracks := ids[start:min(start+n, len(ids))]
			m.lines = append(m.lines, line{group: g, first: start == 0, tracks: tracks})
		}
	}
}

// visible lists the tracks of g that match the filter.
func (m Model) visible(g catalog.Group) []int {
	ids := make([]int, 0, g.Len())
	for id := g.Start; id <= g.End; id++ {
		if matches(id, m.filter) {
			ids = append(ids, id)
		}
	}
	return ids
}

func matches(id int, prefix string) bool {
	return prefix == "" || strings.HasPrefix(strconv.Itoa(id), prefix)
}

// SetFilter shows only tracks whose number starts with prefix and returns
// how many match. A prefix matching nothing leaves the grid unchanged.
func (m *Model) SetFilter(prefix string) int {
	prefix = strings.TrimSpace(prefix)
	count := 0
	for id := 1; id <= m.cat.Total(); id++ {
		if matches(id, prefix) {
			count++
		}
	}
	if count == 0 {
		return 0
	}

	target := m.Target()
	m.filter = prefix
	m.layout()
	m.cur.Jump(0, len(m.lines), m.InnerHeight())
	m.col = 0
	m.focus(target)
	return count
}

// Filter returns the active number prefix.
func (m Model) Filter() string {
	return m.filter
}

// focus moves the cursor onto target after a relayout.
func (m *Model) focus(t Target) {
	for i, l := range m.lines {
		switch {
		case t.Group != 0 && l.first && l.group.ID == t.Group:
			m.cur.Jump(i, len(m.lines), m.InnerHeight())
			m.col = 0
			return
		case t.Track != 0 && slices.Contains(l.tracks, t.Track):
			m.cur.Jump(i, len(m.lines), m.InnerHeight())
			m.col = slices.Index(l.tracks, t.Track) + 1
			return
		}
	}
}

// Target returns the group or track under the cursor.
func (m Model) Target() Target {
	if len(m.lines) == 0 {
		return Target{}
	}
	l := m.lines[m.cur.Pos()]
	if m.col == 0 {
		return Target{Group: l.group.ID}
	}
	return Target{Track: l.tracks[min(m.col, len(l.tracks))-1]}
}

// JumpToTrack puts the cursor on id.
func (m *Model) JumpToTrack(id int) {
	if m.cat.Valid(id) {
		m.focus(Target{Track: id})
	}
}

// HandleAction applies a navigation action. It reports whether the action
// was one.
func (m *Model) HandleAction(a keymap.Action) bool {
	n, h := len(m.lines), m.InnerHeight()
	if n == 0 {
		return false
	}
	switch a {
	case keymap.ActionMoveUp:
		m.cur.Move(-1, n, h)
	case keymap.ActionMoveDown:
		m.cur.Move(1, n, h)
	case keymap.ActionMoveLeft:
		m.col = max(m.col-1, 0)
	case keymap.ActionMoveRight:
		m.col++
	case keymap.ActionJumpStart:
		m.cur.Jump(0, n, h)
		m.col = 0
	case keymap.ActionJumpEnd:
		m.cur.Jump(n-1, n, h)
		m.col = len(m.lines[n-1].tracks)
	default:
		return false
	}
	m.col = min(m.col, len(m.lines[m.cur.Pos()].tracks))
	return true
}

func (m Model) Render(v View) string {
	t := styles.T().S()
	height := m.InnerHeight()
	width := max(m.Width()-ui.BorderHeight, 0)

	states := make(map[int]selection.GroupStatus, len(v.Groups))
	for _, g := range v.Groups {
		states[g.Group.ID] = g
	}

	rows := make([]string, 0, height+ui.HeaderHeight)
	rows = append(rows, t.Title.Render(render.Truncate(v.Title, width)), t.Subtle.Render(render.Separator(width)))

	start, end := m.cur.VisibleRange(len(m.lines), height)
	for i := start; i < end; i++ {
		rows = append(rows, m.renderLine(i, v, states))
	}
	for len(rows) < height+ui.HeaderHeight {
		rows = append(rows, "")
	}

	return styles.PanelStyle(m.IsFocused()).
		Width(width).
		Render(strings.Join(rows, "\n"))
}

func (m Model) renderLine(i int, v View, states map[int]selection.GroupStatus) string {
	t := styles.T().S()
	l := m.lines[i]
	onLine := i == m.cur.Pos() && m.IsFocused()

	var b strings.Builder
	label := strings.Repeat(" ", ui.GroupLabelWidth)
	if l.first {
		st := states[l.group.ID]
		label = render.Fit(groupBox(st.State)+" "+l.group.Name(), ui.GroupLabelWidth)
		switch {
		case onLine && m.col == 0:
			label = t.Cursor.Render(label)
		case st.State == selection.GroupFull:
			label = t.Checked.Render(label)
		case st.State == selection.GroupPartial:
			label = t.Partial.Render(label)
		default:
			label = t.Muted.Render(label)
		}
	}
	b.WriteString(label)

	for j, id := range l.tracks {
		selected := v.Selected != nil && v.Selected(id)
		cell := trackCell(id, selected)
		switch {
		case onLine && m.col == j+1:
			cell = t.Cursor.Render(cell)
		case id == v.Playing:
			cell = t.Playing.Render(cell)
		case selected:
			cell = t.Checked.Render(cell)
		default:
			cell = t.Base.Render(cell)
		}
		b.WriteString(cell)
	}
	return b.String()
}

func groupBox(s selection.GroupState) string {
	switch s {
	case selection.GroupFull:
		return "[x]"
	case selection.GroupPartial:
		return "[~]"
	default:
		return "[ ]"
	}
}

func trackCell(id int, selected bool) string {
	mark := " "
	if selected {
		mark = "●"
	}
	return fmt.Sprintf("%s%4d ", mark, id)
}
