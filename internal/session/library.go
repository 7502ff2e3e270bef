package session

import (
	"github.com/samber/lo"

	"github.com/llehouerou/shloka/internal/state"
)

// library keeps the decoded playlists and recent history between writes so
// snapshots do not go back to storage on every refresh. Every write made
// through it drops the matching list. Like Core, it is not safe for
// concurrent use.
type library struct {
	state.Interface

	playlists      []state.Playlist
	playlistsValid bool
	recent         []state.RecentEntry
	recentValid    bool
}

var _ state.Interface = (*library)(nil)

func newLibrary(st state.Interface) *library {
	return &library{Interface: st}
}

func (l *library) Playlists() []state.Playlist {
	if !l.playlistsValid {
		l.playlists = l.Interface.Playlists()
		l.playlistsValid = true
	}
	return l.playlists
}

func (l *library) Recent() []state.RecentEntry {
	if !l.recentValid {
		l.recent = l.Interface.Recent()
		l.recentValid = true
	}
	return l.recent
}

func (l *library) PlaylistTracks(name string) ([]int, bool) {
	p, ok := lo.Find(l.Playlists(), func(p state.Playlist) bool { return p.Name == name })
	return p.Tracks, ok
}

func (l *library) RecentTracks(id string) ([]int, bool) {
	e, ok := lo.Find(l.Recent(), func(e state.RecentEntry) bool { return e.ID == id })
	return e.Tracks, ok
}

func (l *library) PushRecent(ids []int) (state.RecentEntry, error) {
	defer l.dropRecent()
	return l.Interface.PushRecent(ids)
}

func (l *library) ClearRecent() error {
	defer l.dropRecent()
	return l.Interface.ClearRecent()
}

func (l *library) SavePlaylist(name string, ids []int) error {
	defer l.dropPlaylists()
	return l.Interface.SavePlaylist(name, ids)
}

func (l *library) DeletePlaylist(name string) error {
	defer l.dropPlaylists()
	return l.Interface.DeletePlaylist(name)
}

func (l *library) ImportPlaylists(list []state.Playlist, overwrite bool) (int, error) {
	defer l.dropPlaylists()
	return l.Interface.ImportPlaylists(list, overwrite)
}

func (l *library) dropPlaylists() {
	l.playlists = nil
	l.playlistsValid = false
}

func (l *library) dropRecent() {
	l.recent = nil
	l.recentValid = false
}
