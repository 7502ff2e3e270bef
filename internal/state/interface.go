package state

// Interface defines the persistence gateway contract for dependency injection and testing.
type Interface interface {
	Available() bool
	LastSelection() []int
	SetLastSelection(ids []int) error
	ClearLastSelection() error
	Recent() []RecentEntry
	RecentTracks(id string) ([]int, bool)
	PushRecent(ids []int) (RecentEntry, error)
	ClearRecent() error
	Playlists() []Playlist
	PlaylistTracks(name string) ([]int, bool)
	SavePlaylist(name string, ids []int) error
	DeletePlaylist(name string) error
	ImportPlaylists(list []Playlist, overwrite bool) (int, error)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
