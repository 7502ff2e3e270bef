// Package catalog describes the fixed universe of numbered tracks: how many
// there are, where their audio lives and how they are grouped for selection.
package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxTracks is the largest catalog the zero-padded URL scheme can address.
const MaxTracks = 999

// Defaults used when no configuration overrides them.
const (
	DefaultBaseURL     = "https://ia601703.us.archive.org/35/items/satsang_diksha/sanskrit_"
	DefaultTotalTracks = 315
	DefaultGroupSize   = 10
)

var (
	ErrInvalidTotal     = errors.New("total tracks out of range")
	ErrInvalidGroupSize = errors.New("group size must be positive")
	ErrEmptyBaseURL     = errors.New("base URL is empty")
	ErrUnknownTrack     = errors.New("unknown track")
)

// Catalog is an immutable description of the track universe 1..Total.
type Catalog struct {
	baseURL   string
	total     int
	groupSize int
	groups    []Group
}

// Group is a predefined contiguous block of tracks.
type Group struct {
	ID    int // 1-based
	Start int
	End   int
}

// New validates the parameters and precomputes the groups.
func New(baseURL string, total, groupSize int) (*Catalog, error) {
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}
	if total < 1 || total > MaxTracks {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTotal, total)
	}
	if groupSize < 1 {
		return nil, ErrInvalidGroupSize
	}

	c := &Catalog{baseURL: baseURL, total: total, groupSize: groupSize}
	for start, id := 1, 1; start <= total; start, id = start+groupSize, id+1 {
		c.groups = append(c.groups, Group{
			ID:    id,
			Start: start,
			End:   min(start+groupSize-1, total),
		})
	}
	return c, nil
}

// Default returns the stock catalog.
func Default() *Catalog {
	c, _ := New(DefaultBaseURL, DefaultTotalTracks, DefaultGroupSize)
	return c
}

func (c *Catalog) Total() int { return c.total }
func (c *Catalog) BaseURL() string { return c.baseURL }
func (c *Catalog) GroupSize() int { return c.groupSize }
func (c *Catalog) Groups() []Group { return append([]Group(nil), c.groups...) }
func (c *Catalog) Valid(id int) bool { return id >= 1 && id <= c.total }

// URL returns the audio location of a track: base + 3-digit id + ".mp3".
func (c *Catalog) URL(id int) string {
	return fmt.Sprintf("%s%03d.mp3", c.baseURL, id)
}

// TrackFromURL is the inverse of URL.
func (c *Catalog) TrackFromURL(url string) (int, error) {
	rest, ok := strings.CutPrefix(url, c.baseURL)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownTrack, url)
	}
	num, ok := strings.CutSuffix(rest, ".mp3")
	if !ok || len(num) < 3 {
		return 0, fmt.Errorf("%w: %s", ErrUnknownTrack, url)
	}
	id, err := strconv.Atoi(num)
	if err != nil || !c.Valid(id) {
		return 0, fmt.Errorf("%w: %s", ErrUnknownTrack, url)
	}
	return id, nil
}

// Group returns the group with the given 1-based id.
func (c *Catalog) Group(id int) (Group, bool) {
	if id < 1 || id > len(c.groups) {
		return Group{}, false
	}
	return c.groups[id-1], true
}

// GroupOf returns the group containing a track.
func (c *Catalog) GroupOf(track int) (Group, bool) {
	if !c.Valid(track) {
		return Group{}, false
	}
	return c.groups[(track-1)/c.groupSize], true
}

// Contains reports whether the track belongs to the group.
func (g Group) Contains(track int) bool { return track >= g.Start && track <= g.End }

// Len returns the number of tracks in the group.
func (g Group) Len() int { return g.End - g.Start + 1 }

// Name renders the group as "1–10".
func (g Group) Name() string { return fmt.Sprintf("%d–%d", g.Start, g.End) }
