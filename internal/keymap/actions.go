// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit        Action = "quit"
	ActionHelp        Action = "help"
	ActionSwitchFocus Action = "switch_focus"
	ActionToggleQuiz  Action = "toggle_quiz"

	// Playback actions
	ActionPlayPause     Action = "play_pause"
	ActionNextTrack     Action = "next_track"
	ActionPrevTrack     Action = "prev_track"
	ActionCycleSpeed    Action = "cycle_speed"
	ActionCycleRepeat   Action = "cycle_repeat"
	ActionRepeatEach    Action = "repeat_each"
	ActionToggleShuffle Action = "toggle_shuffle"

	// Quiz actions
	ActionQuizNext     Action = "quiz_next"
	ActionQuizReveal   Action = "quiz_reveal"
	ActionQuizAutoplay Action = "quiz_autoplay"
	ActionQuizTime     Action = "quiz_time"
	ActionQuizDelay    Action = "quiz_delay"

	// Selection actions
	ActionToggle         Action = "toggle"
	ActionRange          Action = "range"
	ActionClearSelection Action = "clear_selection"
	ActionSavePlaylist   Action = "save_playlist"
	ActionSearch         Action = "search"
	ActionClearSearch    Action = "clear_search"

	// Library actions
	ActionLoadPlaylist   Action = "load_playlist"
	ActionDeletePlaylist Action = "delete_playlist"
	ActionClearHistory   Action = "clear_history"

	// Navigation actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionMoveLeft  Action = "move_left"
	ActionMoveRight Action = "move_right"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
)

// Binding contexts.
const (
	ContextGlobal   = "global"
	ContextPlayback = "playback"
	ContextQuiz     = "quiz"
	ContextTracks   = "tracks"
	ContextLibrary  = "library"
)
