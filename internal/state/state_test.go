package state

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/shloka/internal/store"
)

// brokenStore rejects every write.
type brokenStore struct{ *store.Memory }

func (b *brokenStore) Set(string, []byte) error { return errors.New("quota exceeded") }

func newTestManager(t *testing.T, opts ...Option) (*Manager, *store.Memory) {
	t.Helper()
	kv := store.NewMemory()
	m := New(kv, opts...)
	require.True(t, m.Available())
	return m, kv
}

func TestNew_ProbeLeavesNoKeys(t *testing.T) {
	_, kv := newTestManager(t)
	assert.Empty(t, kv.Keys())
}

func TestNew_UnavailableStore(t *testing.T) {
	m := New(&brokenStore{store.NewMemory()})
	assert.False(t, m.Available())

	assert.Nil(t, m.LastSelection())
	assert.Empty(t, m.Recent())
	assert.Empty(t, m.Playlists())
	assert.ErrorIs(t, m.SetLastSelection([]int{1}), ErrUnavailable)
	assert.ErrorIs(t, m.SavePlaylist("x", []int{1}), ErrUnavailable)
	_, err := m.PushRecent([]int{1})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNew_NilStore(t *testing.T) {
	m := New(nil)
	assert.False(t, m.Available())
	assert.NoError(t, m.Close())
}

func TestLastSelection_RoundTrip(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.SetLastSelection([]int{5, 3, 9}))
	assert.Equal(t, []int{5, 3, 9}, m.LastSelection())

	require.NoError(t, m.ClearLastSelection())
	assert.Nil(t, m.LastSelection())
}

func TestCorruptValueIsDiscarded(t *testing.T) {
	m, kv := newTestManager(t)

	require.NoError(t, kv.Set(KeyLastSelection, []byte("{not json")))
	require.NoError(t, kv.Set(KeyRecentSelection, []byte(`{"wrong":"shape"}`)))
	require.NoError(t, kv.Set(KeyPlaylists, []byte(`[1,2,3]`)))

	assert.Nil(t, m.LastSelection())
	assert.Empty(t, m.Recent())
	assert.Empty(t, m.Playlists())
	assert.Empty(t, kv.Keys(), "corrupt keys should be deleted")

	require.NoError(t, m.SavePlaylist("after", []int{1}))
	assert.Len(t, m.Playlists(), 1)
}

func TestPushRecent_BoundedAndDeduplicated(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	m, _ := newTestManager(t, WithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}))

	for i := 1; i <= 7; i++ {
		_, err := m.PushRecent([]int{i})
		require.NoError(t, err)
	}
	recent := m.Recent()
	require.Len(t, recent, DefaultMaxRecent)
	assert.Equal(t, []int{7}, recent[0].Tracks)
	assert.Equal(t, []int{3}, recent[4].Tracks)

	// Same set in another order moves the existing entry to the front.
	first, err := m.PushRecent([]int{4})
	require.NoError(t, err)
	recent = m.Recent()
	require.Len(t, recent, DefaultMaxRecent)
	assert.Equal(t, first.ID, recent[0].ID)
	assert.Equal(t, []int{4}, recent[0].Tracks)
	assert.Equal(t, []int{7}, recent[1].Tracks)

	seen := map[string]bool{}
	for _, e := range recent {
		key := e.Label
		assert.False(t, seen[key], "duplicate entry %q", key)
		seen[key] = true
	}
}

func TestPushRecent_SetEqualityKeepsID(t *testing.T) {
	m, _ := newTestManager(t)

	a, err := m.PushRecent([]int{1, 3, 5})
	require.NoError(t, err)
	_, err = m.PushRecent([]int{2})
	require.NoError(t, err)
	b, err := m.PushRecent([]int{5, 3, 1, 3})
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	recent := m.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, "Shlok 1, 3, 3, 5", recent[0].Label)

	ids, ok := m.RecentTracks(a.ID)
	require.True(t, ok)
	assert.Equal(t, []int{5, 3, 1, 3}, ids)
}

func TestPushRecent_Empty(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.PushRecent(nil)
	require.NoError(t, err)
	assert.Empty(t, m.Recent())
}

func TestClearRecent(t *testing.T) {
	m, _ := newTestManager(t, WithMaxRecent(2))
	_, _ = m.PushRecent([]int{1})
	_, _ = m.PushRecent([]int{2})
	_, _ = m.PushRecent([]int{3})
	assert.Len(t, m.Recent(), 2)

	require.NoError(t, m.ClearRecent())
	assert.Empty(t, m.Recent())
}

func TestSavePlaylist(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.SavePlaylist("  morning ", []int{3, 1, 3}))
	ids, ok := m.PlaylistTracks("morning")
	require.True(t, ok)
	assert.Equal(t, []int{3, 1, 3}, ids, "order and duplicates preserved")

	assert.ErrorIs(t, m.SavePlaylist("   ", []int{1}), ErrNameEmpty)
	assert.ErrorIs(t, m.SavePlaylist("morning", []int{9}), ErrNameExists)
	assert.ErrorIs(t, m.SavePlaylist("empty", nil), ErrEmptyPlaylist)

	ids, _ = m.PlaylistTracks("morning")
	assert.Equal(t, []int{3, 1, 3}, ids, "collision must not overwrite")
}

func TestPlaylists_SortedByName(t *testing.T) {
	m, _ := newTestManager(t)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, m.SavePlaylist(name, []int{1}))
	}
	var names []string
	for _, p := range m.Playlists() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)
}

func TestDeletePlaylist(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.SavePlaylist("a", []int{1}))

	require.NoError(t, m.DeletePlaylist("a"))
	_, ok := m.PlaylistTracks("a")
	assert.False(t, ok)
	assert.ErrorIs(t, m.DeletePlaylist("a"), ErrPlaylistNotFound)
}

func TestImportPlaylists(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.SavePlaylist("keep", []int{1}))

	n, err := m.ImportPlaylists([]Playlist{
		{Name: "keep", Tracks: []int{2}},
		{Name: "new", Tracks: []int{4, 5}},
		{Name: "", Tracks: []int{6}},
		{Name: "blank", Tracks: nil},
	}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	ids, _ := m.PlaylistTracks("keep")
	assert.Equal(t, []int{1}, ids)

	n, err = m.ImportPlaylists([]Playlist{{Name: "keep", Tracks: []int{2}}}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	ids, _ = m.PlaylistTracks("keep")
	assert.Equal(t, []int{2}, ids)
}

func TestManager_OverSQLite(t *testing.T) {
	kv, err := store.OpenSQLite(":memory:")
	require.NoError(t, err)
	m := New(kv)
	defer m.Close()

	require.True(t, m.Available())
	require.NoError(t, m.SavePlaylist("p", []int{7, 8}))
	_, err = m.PushRecent([]int{7, 8})
	require.NoError(t, err)

	ids, ok := m.PlaylistTracks("p")
	require.True(t, ok)
	assert.Equal(t, []int{7, 8}, ids)
	assert.Len(t, m.Recent(), 1)
}
