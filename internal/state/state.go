// Package state is the persistence gateway for the user's selections,
// recent history and saved playlists.
package state

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/llehouerou/shloka/internal/catalog"
	"github.com/llehouerou/shloka/internal/store"
)

// Storage keys.
const (
	KeyLastSelection   = "lastSelection"
	KeyRecentSelection = "recentSelections"
	KeyPlaylists       = "personalPlaylists"

	probeKey = "__storage_probe__"
)

// DefaultMaxRecent bounds the recent history.
const DefaultMaxRecent = 5

var (
	ErrUnavailable      = errors.New("storage unavailable")
	ErrNameEmpty        = errors.New("playlist name is empty")
	ErrNameExists       = errors.New("playlist name already exists")
	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrEmptyPlaylist    = errors.New("playlist has no tracks")
)

// RecentEntry is one remembered selection.
type RecentEntry struct {
	ID      string    `json:"id"`
	Tracks  []int     `json:"tracks"`
	Label   string    `json:"label"`
	SavedAt time.Time `json:"savedAt"`
}

// Playlist is a named, ordered list of tracks.
type Playlist struct {
	Name   string `json:"name" yaml:"name"`
	Tracks []int  `json:"tracks" yaml:"tracks"`
}

// Manager reads and writes persisted state through a store.Store.
type Manager struct {
	mu        sync.Mutex
	kv        store.Store
	available bool
	maxRecent int
	log       zerolog.Logger
	now       func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxRecent sets the recent history capacity.
func WithMaxRecent(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxRecent = n
		}
	}
}

// WithLogger sets the logger used to report corrupt data.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithClock overrides the time source for recent entries.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// New wraps kv and probes whether it accepts writes. A nil kv yields an
// unavailable manager.
func New(kv store.Store, opts ...Option) *Manager {
	m := &Manager{
		kv:        kv,
		maxRecent: DefaultMaxRecent,
		log:       zerolog.Nop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.available = m.probe()
	if !m.available {
		m.log.Warn().Msg("persistent storage unavailable, running without saved state")
	}
	return m
}

func (m *Manager) probe() bool {
	if m.kv == nil {
		return false
	}
	if err := m.kv.Set(probeKey, []byte("1")); err != nil {
		return false
	}
	return m.kv.Delete(probeKey) == nil
}

// Available reports whether writes are persisted.
func (m *Manager) Available() bool {
	return m.available
}

// Close closes the underlying store.
func (m *Manager) Close() error {
	if m.kv == nil {
		return nil
	}
	return m.kv.Close()
}

// load decodes the value stored under key. Missing keys yield the zero
// value. Corrupt values are deleted and also yield the zero value.
func load[T any](m *Manager, key string) T {
	var zero T
	if !m.available {
		return zero
	}
	data, err := m.kv.Get(key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			m.log.Error().Err(err).Str("key", key).Msg("read failed")
		}
		return zero
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		m.log.Warn().Err(err).Str("key", key).Msg("discarding corrupt stored value")
		_ = m.kv.Delete(key)
		return zero
	}
	return v
}

func (m *Manager) save(key string, v any) error {
	if !m.available {
		return ErrUnavailable
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := m.kv.Set(key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (m *Manager) remove(key string) error {
	if !m.available {
		return ErrUnavailable
	}
	return m.kv.Delete(key)
}

// LastSelection returns the selection that was last played.
func (m *Manager) LastSelection() []int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return load[[]int](m, KeyLastSelection)
}

func (m *Manager) SetLastSelection(ids []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.save(KeyLastSelection, ids)
}

func (m *Manager) ClearLastSelection() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remove(KeyLastSelection)
}

// Recent returns the recent history, most recent first.
func (m *Manager) Recent() []RecentEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recent()
}

func (m *Manager) recent() []RecentEntry {
	return load[[]RecentEntry](m, KeyRecentSelection)
}

// RecentTracks returns the tracks of the entry with the given id.
func (m *Manager) RecentTracks(id string) ([]int, bool) {
	entry, ok := lo.Find(m.Recent(), func(e RecentEntry) bool { return e.ID == id })
	if !ok {
		return nil, false
	}
	return entry.Tracks, true
}

// PushRecent records ids at the front of the history. A selection with the
// same set of tracks as an existing entry moves that entry to the front.
func (m *Manager) PushRecent(ids []int) (RecentEntry, error) {
	if len(ids) == 0 {
		return RecentEntry{}, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.available {
		return RecentEntry{}, ErrUnavailable
	}

	entries := m.recent()
	entry := RecentEntry{
		ID:      uuid.NewString(),
		Tracks:  slices.Clone(ids),
		Label:   catalog.Label(ids),
		SavedAt: m.now(),
	}
	if idx := slices.IndexFunc(entries, func(e RecentEntry) bool { return sameSet(e.Tracks, ids) }); idx >= 0 {
		entry.ID = entries[idx].ID
		entries = slices.Delete(entries, idx, idx+1)
	}

	entries = append([]RecentEntry{entry}, entries...)
	if len(entries) > m.maxRecent {
		entries = entries[:m.maxRecent]
	}
	return entry, m.save(KeyRecentSelection, entries)
}

func (m *Manager) ClearRecent() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remove(KeyRecentSelection)
}

// Playlists returns saved playlists sorted by name.
func (m *Manager) Playlists() []Playlist {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedPlaylists(m.playlists())
}

func (m *Manager) playlists() map[string][]int {
	stored := load[map[string][]int](m, KeyPlaylists)
	if stored == nil {
		stored = map[string][]int{}
	}
	return stored
}

// PlaylistTracks returns the tracks of a saved playlist in saved order.
func (m *Manager) PlaylistTracks(name string) ([]int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids, ok := m.playlists()[name]
	return ids, ok
}

// SavePlaylist stores ids under a new name.
func (m *Manager) SavePlaylist(name string, ids []int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameEmpty
	}
	if len(ids) == 0 {
		return ErrEmptyPlaylist
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.available {
		return ErrUnavailable
	}
	stored := m.playlists()
	if _, exists := stored[name]; exists {
		return fmt.Errorf("%w: %q", ErrNameExists, name)
	}
	stored[name] = slices.Clone(ids)
	return m.save(KeyPlaylists, stored)
}

func (m *Manager) DeletePlaylist(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.available {
		return ErrUnavailable
	}
	stored := m.playlists()
	if _, ok := stored[name]; !ok {
		return fmt.Errorf("%w: %q", ErrPlaylistNotFound, name)
	}
	delete(stored, name)
	return m.save(KeyPlaylists, stored)
}

// ImportPlaylists adds playlists in bulk. Existing names are skipped unless
// overwrite is set. Playlists with an empty name or no tracks are skipped.
// It returns how many playlists were written.
func (m *Manager) ImportPlaylists(list []Playlist, overwrite bool) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.available {
		return 0, ErrUnavailable
	}
	stored := m.playlists()
	written := 0
	for _, p := range list {
		name := strings.TrimSpace(p.Name)
		if name == "" || len(p.Tracks) == 0 {
			continue
		}
		if _, exists := stored[name]; exists && !overwrite {
			continue
		}
		stored[name] = slices.Clone(p.Tracks)
		written++
	}
	if written == 0 {
		return 0, nil
	}
	return written, m.save(KeyPlaylists, stored)
}

func sortedPlaylists(stored map[string][]int) []Playlist {
	out := make([]Playlist, 0, len(stored))
	for name, ids := range stored {
		out = append(out, Playlist{Name: name, Tracks: ids})
	}
	slices.SortFunc(out, func(a, b Playlist) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// sameSet reports whether a and b contain the same distinct values.
func sameSet(a, b []int) bool {
	ua, ub := lo.Uniq(a), lo.Uniq(b)
	if len(ua) != len(ub) {
		return false
	}
	slices.Sort(ua)
	slices.Sort(ub)
	return slices.Equal(ua, ub)
}
