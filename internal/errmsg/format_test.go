//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaylistSave,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpPlaylistSave,
			err:      errors.New("playlist name is empty"),
			expected: "Failed to save playlist: playlist name is empty",
		},
		{
			name:     "range operation",
			op:       OpSelectionRange,
			err:      errors.New("invalid range"),
			expected: "Failed to apply range: invalid range",
		},
		{
			name:     "history operation",
			op:       OpHistoryClear,
			err:      errors.New("storage unavailable"),
			expected: "Failed to clear history: storage unavailable",
		},
		{
			name:     "playback operation",
			op:       OpPlaybackStart,
			err:      errors.New("no audio device"),
			expected: "Failed to start playback: no audio device",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaylistDelete,
			context:  "Morning",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpPlaylistDelete,
			context:  "Morning",
			err:      errors.New("playlist not found"),
			expected: "Failed to delete playlist 'Morning': playlist not found",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpPlaylistDelete,
			context:  "",
			err:      errors.New("playlist not found"),
			expected: "Failed to delete playlist: playlist not found",
		},
		{
			name:     "import with filename context",
			op:       OpPlaylistImport,
			context:  "playlists.yaml",
			err:      errors.New("yaml: line 3: mapping values are not allowed"),
			expected: "Failed to import playlists 'playlists.yaml': yaml: line 3: mapping values are not allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpSelectionRange, OpSelectionGroup, OpSelectionLoad, OpSelectionRecent,
		OpPlaylistSave, OpPlaylistDelete, OpPlaylistLoad, OpPlaylistImport, OpPlaylistExport,
		OpHistoryClear, OpHistoryLoad,
		OpPlaybackStart, OpPlaybackResume, OpPlaybackSpeed, OpPlaybackRepeat,
		OpQuizNext, OpQuizReveal, OpQuizTime, OpQuizDelay,
		OpInitialize, OpConfigLoad, OpStorage,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}
			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
