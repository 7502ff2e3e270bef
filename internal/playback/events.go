package playback

// StateChange is emitted when the session state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when a different playlist position starts loading.
// Replays of the same position through a repeat mode do not emit.
type TrackChange struct {
	Previous int // 0 when nothing was loaded
	Current  int
	Index    int
	Total    int
}

// ModeChange is emitted when speed, repeat or shuffle settings change.
type ModeChange struct {
	Settings Settings
}

// ErrorEvent is emitted when a track fails to load or play.
type ErrorEvent struct {
	Operation string // e.g., "load", "play"
	Track     int
	Err       error
}
