// Package selection reconciles the three ways of choosing what to play:
// individual tracks, saved playlists and recent selections.
//
// In Regular mode the sources are mutually exclusive: checking an item in one
// source unchecks everything in the other two, and at most one playlist or
// recent entry can be checked. In Quiz mode sources combine freely and the
// active selection is their union.
package selection

import (
	"errors"
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"
	"github.com/samber/lo"

	"github.com/llehouerou/shloka/internal/catalog"
)

var (
	ErrInvalidRange    = errors.New("invalid range")
	ErrUnknownTrack    = errors.New("unknown track")
	ErrUnknownPlaylist = errors.New("unknown playlist")
	ErrUnknownRecent   = errors.New("unknown recent selection")
	ErrUnknownGroup    = errors.New("unknown group")
)

// Mode selects how sources combine.
type Mode int

const (
	Regular Mode = iota
	Quiz
)

func (m Mode) String() string {
	switch m {
	case Regular:
		return "Regular"
	case Quiz:
		return "Quiz"
	default:
		return "Unknown"
	}
}

// Library resolves playlist names and recent entry ids to tracks.
type Library interface {
	PlaylistTracks(name string) ([]int, bool)
	RecentTracks(id string) ([]int, bool)
}

// Reconciler owns the checked state of every source.
type Reconciler struct {
	cat  *catalog.Catalog
	lib  Library
	mode Mode

	tracks    *bitset.BitSet
	playlists []string
	recents   []string
}

func New(cat *catalog.Catalog, lib Library) *Reconciler {
	return &Reconciler{
		cat:    cat,
		lib:    lib,
		tracks: bitset.New(uint(cat.Total() + 1)),
	}
}

func (r *Reconciler) Mode() Mode { return r.mode }

// SetMode switches mode. Returning to Regular collapses a combined selection
// to a single source: tracks win over playlists, playlists over recents.
func (r *Reconciler) SetMode(m Mode) {
	r.mode = m
	if m != Regular {
		return
	}
	switch {
	case r.tracks.Any():
		r.playlists, r.recents = nil, nil
	case len(r.playlists) > 0:
		r.playlists, r.recents = r.playlists[:1], nil
	case len(r.recents) > 0:
		r.recents = r.recents[:1]
	}
}

// SelectTrack checks or unchecks one track.
func (r *Reconciler) SelectTrack(id int, checked bool) error {
	if !r.cat.Valid(id) {
		return fmt.Errorf("%w: %d", ErrUnknownTrack, id)
	}
	if checked {
		r.exclusive(sourceTracks)
		r.tracks.Set(uint(id))
	} else {
		r.tracks.Clear(uint(id))
	}
	return nil
}

// ToggleTrack flips one track.
func (r *Reconciler) ToggleTrack(id int) error {
	return r.SelectTrack(id, !r.IsTrackSelected(id))
}

// SelectPlaylist checks or unchecks a saved playlist.
func (r *Reconciler) SelectPlaylist(name string, checked bool) error {
	if !checked {
		r.playlists = lo.Without(r.playlists, name)
		return nil
	}
	if _, ok := r.lib.PlaylistTracks(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPlaylist, name)
	}
	if r.mode == Regular {
		r.exclusive(sourcePlaylist)
		r.playlists = []string{name}
		return nil
	}
	if !slices.Contains(r.playlists, name) {
		r.playlists = append(r.playlists, name)
	}
	return nil
}

// SelectRecent checks or unchecks a recent history entry.
func (r *Reconciler) SelectRecent(id string, checked bool) error {
	if !checked {
		r.recents = lo.Without(r.recents, id)
		return nil
	}
	if _, ok := r.lib.RecentTracks(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRecent, id)
	}
	if r.mode == Regular {
		r.exclusive(sourceRecent)
		r.recents = []string{id}
		return nil
	}
	if !slices.Contains(r.recents, id) {
		r.recents = append(r.recents, id)
	}
	return nil
}

type source int

const (
	sourceTracks source = iota
	sourcePlaylist
	sourceRecent
)

// exclusive clears every source except keep, in Regular mode only.
func (r *Reconciler) exclusive(keep source) {
	if r.mode != Regular {
		return
	}
	if keep != sourceTracks {
		r.tracks.ClearAll()
	}
	if keep != sourcePlaylist {
		r.playlists = nil
	}
	if keep != sourceRecent {
		r.recents = nil
	}
}

// ApplyRange replaces the whole selection with the tracks start..end.
// An invalid range leaves the selection untouched.
func (r *Reconciler) ApplyRange(start, end int) error {
	if start < 1 || end > r.cat.Total() || start > end {
		return fmt.Errorf("%w: %d-%d (valid: 1-%d)", ErrInvalidRange, start, end, r.cat.Total())
	}
	r.Clear()
	for id := start; id <= end; id++ {
		r.tracks.Set(uint(id))
	}
	return nil
}

// ToggleGroup deselects a fully selected group, otherwise selects all of it.
func (r *Reconciler) ToggleGroup(groupID int) error {
	g, ok := r.cat.Group(groupID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownGroup, groupID)
	}
	if r.groupState(g) == GroupFull {
		for id := g.Start; id <= g.End; id++ {
			r.tracks.Clear(uint(id))
		}
		return nil
	}
	r.exclusive(sourceTracks)
	for id := g.Start; id <= g.End; id++ {
		r.tracks.Set(uint(id))
	}
	return nil
}

// Clear unchecks every source.
func (r *Reconciler) Clear() {
	r.tracks.ClearAll()
	r.playlists = nil
	r.recents = nil
}

// SetTracks replaces the selection with ids. Unknown ids are ignored.
func (r *Reconciler) SetTracks(ids []int) {
	r.Clear()
	for _, id := range ids {
		if r.cat.Valid(id) {
			r.tracks.Set(uint(id))
		}
	}
}

// LoadPlaylist copies a saved playlist into the individual track selection.
func (r *Reconciler) LoadPlaylist(name string) error {
	ids, ok := r.lib.PlaylistTracks(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPlaylist, name)
	}
	r.SetTracks(ids)
	return nil
}

// ForgetPlaylist drops a checked playlist that no longer exists.
func (r *Reconciler) ForgetPlaylist(name string) {
	r.playlists = lo.Without(r.playlists, name)
}

// ForgetRecents drops every checked recent entry.
func (r *Reconciler) ForgetRecents() {
	r.recents = nil
}

func (r *Reconciler) IsTrackSelected(id int) bool {
	return id >= 0 && r.tracks.Test(uint(id))
}

func (r *Reconciler) IsPlaylistSelected(name string) bool {
	return slices.Contains(r.playlists, name)
}

func (r *Reconciler) IsRecentSelected(id string) bool {
	return slices.Contains(r.recents, id)
}

// HasTrackSelection reports whether any individual track is checked.
func (r *Reconciler) HasTrackSelection() bool {
	return r.tracks.Any()
}

// HasSelection reports whether any source has a checked item.
func (r *Reconciler) HasSelection() bool {
	return r.tracks.Any() || len(r.playlists) > 0 || len(r.recents) > 0
}

// SelectedTracks returns the individually checked tracks in ascending order.
func (r *Reconciler) SelectedTracks() []int {
	ids := make([]int, 0, r.tracks.Count())
	for i, ok := r.tracks.NextSet(0); ok; i, ok = r.tracks.NextSet(i + 1) {
		ids = append(ids, int(i))
	}
	return ids
}

// Active returns the tracks to play in the current mode.
func (r *Reconciler) Active() []int {
	return r.ActiveFor(r.mode)
}

// ActiveFor resolves the checked sources to a list of tracks.
//
// Regular: individual tracks ascending, or the checked playlist in saved
// order with duplicates, or the checked recent entry ascending.
// Quiz: the union of every source, ascending and de-duplicated.
func (r *Reconciler) ActiveFor(m Mode) []int {
	if m == Quiz {
		union := r.tracks.Clone()
		for _, name := range r.playlists {
			ids, _ := r.lib.PlaylistTracks(name)
			r.setValid(union, ids)
		}
		for _, id := range r.recents {
			ids, _ := r.lib.RecentTracks(id)
			r.setValid(union, ids)
		}
		return collect(union)
	}

	switch sel := r.Current().(type) {
	case Tracks:
		return sel.IDs
	case Playlist:
		ids, _ := r.lib.PlaylistTracks(sel.Name)
		return lo.Filter(ids, func(id int, _ int) bool { return r.cat.Valid(id) })
	case Recent:
		ids, _ := r.lib.RecentTracks(sel.ID)
		set := bitset.New(uint(r.cat.Total() + 1))
		r.setValid(set, ids)
		return collect(set)
	default:
		return nil
	}
}

func (r *Reconciler) setValid(set *bitset.BitSet, ids []int) {
	for _, id := range ids {
		if r.cat.Valid(id) {
			set.Set(uint(id))
		}
	}
}

func collect(set *bitset.BitSet) []int {
	ids := make([]int, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		ids = append(ids, int(i))
	}
	return ids
}
