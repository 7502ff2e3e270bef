package player

// State represents the playback state machine.
//
//	┌──────────┐   load+play    ┌──────────┐
//	│  Stopped │ ──────────────▶│  Playing │◀─┐
//	└──────────┘                └──────────┘  │
//	     ▲  ▲                     │    │      │ play
//	     │  │ ended / stop  pause │    │      │
//	     │  └─────────────────────┼────┘      │
//	     │                        ▼           │
//	     │        stop       ┌──────────┐     │
//	     └───────────────────│  Paused  │─────┘
//	                         └──────────┘
//
// Playing covers the time spent fetching a source after Play was requested;
// the playing notification fires once audio actually starts.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}
