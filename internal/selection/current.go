package selection

// Selection is the single active source in Regular mode: Tracks, Playlist or
// Recent. A nil Selection means nothing is checked.
type Selection interface {
	isSelection()
}

// Tracks is a set of individually checked tracks, ascending.
type Tracks struct{ IDs []int }

// Playlist is one checked saved playlist.
type Playlist struct{ Name string }

// Recent is one checked recent history entry.
type Recent struct{ ID string }

func (Tracks) isSelection() {}
func (Playlist) isSelection() {}
func (Recent) isSelection() {}

// Current returns the active source, giving tracks priority over playlists
// and playlists over recents when several are checked.
func (r *Reconciler) Current() Selection {
	switch {
	case r.tracks.Any():
		return Tracks{IDs: r.SelectedTracks()}
	case len(r.playlists) > 0:
		return Playlist{Name: r.playlists[0]}
	case len(r.recents) > 0:
		return Recent{ID: r.recents[0]}
	default:
		return nil
	}
}

// Playlists returns the checked playlist names in the order they were checked.
func (r *Reconciler) Playlists() []string {
	return append([]string(nil), r.playlists...)
}

// Recents returns the checked recent entry ids in the order they were checked.
func (r *Reconciler) Recents() []string {
	return append([]string(nil), r.recents...)
}
