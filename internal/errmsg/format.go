// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Selection operations
	OpSelectionRange  Op = "apply range"
	OpSelectionGroup  Op = "toggle group"
	OpSelectionLoad   Op = "load selection"
	OpSelectionRecent Op = "select recent selection"

	// Playlist operations
	OpPlaylistSave   Op = "save playlist"
	OpPlaylistDelete Op = "delete playlist"
	OpPlaylistLoad   Op = "load playlist"
	OpPlaylistImport Op = "import playlists"
	OpPlaylistExport Op = "export playlists"

	// History operations
	OpHistoryClear Op = "clear history"
	OpHistoryLoad  Op = "load history"

	// Playback operations
	OpPlaybackStart  Op = "start playback"
	OpPlaybackResume Op = "resume playback"
	OpPlaybackSpeed  Op = "change speed"
	OpPlaybackRepeat Op = "change repeat mode"

	// Quiz operations
	OpQuizNext   Op = "play next question"
	OpQuizReveal Op = "reveal answer"
	OpQuizTime   Op = "set quiz time"
	OpQuizDelay  Op = "set quiz delay"

	// Initialization
	OpInitialize Op = "initialize application"
	OpConfigLoad Op = "load configuration"
	OpStorage    Op = "open storage"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
