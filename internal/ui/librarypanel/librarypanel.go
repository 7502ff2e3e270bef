// Package librarypanel lists saved playlists and the recent history, each
// entry checkable as a playback source.
package librarypanel

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/shloka/internal/icons"
	"github.com/llehouerou/shloka/internal/state"
	"github.com/llehouerou/shloka/internal/ui"
	"github.com/llehouerou/shloka/internal/ui/cursor"
	"github.com/llehouerou/shloka/internal/ui/render"
	"github.com/llehouerou/shloka/internal/ui/styles"
)

// Kind tells playlists from history entries.
type Kind int

const (
	KindPlaylist Kind = iota
	KindRecent
)

// Entry is one selectable row.
type Entry struct {
	Kind   Kind
	Key    string // playlist name or recent id
	Label  string
	Tracks int
	When   time.Time
}

// View carries what the panel draws besides its entries.
type View struct {
	Playlists        []state.Playlist
	Recent           []state.RecentEntry
	CheckedPlaylists []string
	CheckedRecents   []string
	StorageAvailable bool
	Now              time.Time
}

// Model is the side panel.
type Model struct {
	ui.Base
	entries []Entry
	cur     cursor.Cursor
}

func New() Model {
	return Model{cur: cursor.New(ui.ScrollMargin)}
}

// SetEntries replaces the list, keeping the cursor on the same entry when
// it still exists.
func (m *Model) SetEntries(v View) {
	prev, hadPrev := m.Selected()

	entries := make([]Entry, 0, len(v.Playlists)+len(v.Recent))
	for _, p := range v.Playlists {
		entries = append(entries, Entry{Kind: KindPlaylist, Key: p.Name, Label: p.Name, Tracks: len(p.Tracks)})
	}
	for _, r := range v.Recent {
		entries = append(entries, Entry{Kind: KindRecent, Key: r.ID, Label: r.Label, Tracks: len(r.Tracks), When: r.SavedAt})
	}
	m.entries = entries

	if hadPrev {
		if i := slices.IndexFunc(entries, func(e Entry) bool { return e.Kind == prev.Kind && e.Key == prev.Key }); i >= 0 {
			m.cur.Jump(i, len(entries), m.listHeight())
			return
		}
	}
	m.cur.Clamp(len(entries), m.listHeight())
}

// Selected returns the entry under the cursor.
func (m Model) Selected() (Entry, bool) {
	if len(m.entries) == 0 {
		return Entry{}, false
	}
	return m.entries[m.cur.Pos()], true
}

// HandleKey moves the cursor and reports whether key was a movement.
func (m *Model) HandleKey(key string) bool {
	return m.cur.HandleKey(key, len(m.entries), m.listHeight())
}

// two section headers with separators
func (m Model) listHeight() int {
	return max(m.InnerHeight()-2, 1)
}

func (m Model) Render(v View) string {
	t := styles.T().S()
	width := max(m.Width()-ui.BorderHeight, 0)

	rows := []string{t.Title.Render("Playlists & History"), t.Subtle.Render(render.Separator(width))}
	if !v.StorageAvailable {
		rows = append(rows, t.Warning.Render(render.Truncate("Storage unavailable", width)))
	}

	start, end := m.cur.VisibleRange(len(m.entries), m.listHeight())
	section := Kind(-1)
	for i := start; i < end; i++ {
		e := m.entries[i]
		if e.Kind != section {
			section = e.Kind
			rows = append(rows, t.Muted.Render(sectionTitle(section)))
		}
		checked := slices.Contains(v.CheckedRecents, e.Key)
		if e.Kind == KindPlaylist {
			checked = slices.Contains(v.CheckedPlaylists, e.Key)
		}
		rows = append(rows, m.renderEntry(i, e, checked, v.Now, width))
	}
	if len(m.entries) == 0 {
		rows = append(rows, t.Subtle.Render("No playlists or history yet"))
	}

	height := m.InnerHeight() + ui.HeaderHeight
	if len(rows) > height {
		rows = rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return styles.PanelStyle(m.IsFocused()).Width(width).Render(strings.Join(rows, "\n"))
}

func sectionTitle(k Kind) string {
	if k == KindPlaylist {
		return icons.FormatPlaylist("Playlists")
	}
	return icons.FormatRecent("Recent")
}

func (m Model) renderEntry(i int, e Entry, checked bool, now time.Time, width int) string {
	t := styles.T().S()
	box := "[ ]"
	if checked {
		box = "[x]"
	}
	detail := strconv.Itoa(e.Tracks)
	if !e.When.IsZero() {
		detail = humanize.RelTime(e.When, now, "ago", "from now")
	}
	left := render.Truncate(box+" "+e.Label, max(width-len(detail)-1, 1))
	line := render.Row(left, detail, width)

	switch {
	case i == m.cur.Pos() && m.IsFocused():
		return t.Cursor.Render(line)
	case checked:
		return t.Checked.Render(line)
	default:
		return t.Base.Render(line)
	}
}
