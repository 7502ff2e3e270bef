package playback

import (
	"fmt"
	"strings"
)

// State represents the playback session state.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
	StateFinished
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateFinished:
		return "Finished"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a session owns the media (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}

// RepeatMode defines the repeat behavior. Modes are mutually exclusive.
type RepeatMode int

const (
	RepeatNone RepeatMode = iota
	RepeatTrack
	RepeatEachN
	RepeatPlaylist
)

// String returns the repeat mode name.
func (m RepeatMode) String() string {
	switch m {
	case RepeatNone:
		return "None"
	case RepeatTrack:
		return "Track"
	case RepeatEachN:
		return "Each"
	case RepeatPlaylist:
		return "Playlist"
	default:
		return "Unknown"
	}
}

// Next cycles None → Track → Each → Playlist → None.
func (m RepeatMode) Next() RepeatMode {
	return (m + 1) % (RepeatPlaylist + 1)
}

func (m RepeatMode) valid() bool {
	return m >= RepeatNone && m <= RepeatPlaylist
}

// ParseRepeatMode reads a mode name as written in config files and flags.
func ParseRepeatMode(s string) (RepeatMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "off":
		return RepeatNone, nil
	case "track", "one":
		return RepeatTrack, nil
	case "each", "eachn", "each_n":
		return RepeatEachN, nil
	case "playlist", "all":
		return RepeatPlaylist, nil
	default:
		return RepeatNone, fmt.Errorf("%w: %q", ErrInvalidRepeatMode, s)
	}
}
