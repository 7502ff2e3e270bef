package quiz

// State is the phase of the current question.
//
//	Idle ──playNext──▶ Loading ──delay──▶ Listening ──countdown──▶ TimedOut
//	                     │                    │                      │
//	                     └──────reveal────────┴────────reveal────────┴──▶ Revealed
//
// Paused is entered when the listener pauses audio. Any state moves to
// Loading on playNext.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateListening
	StateTimedOut
	StateRevealed
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoading:
		return "Loading"
	case StateListening:
		return "Listening"
	case StateTimedOut:
		return "TimedOut"
	case StateRevealed:
		return "Revealed"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}
