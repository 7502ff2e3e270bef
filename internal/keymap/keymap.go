// Package keymap defines key bindings for the application.
package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// Bindings contains every key binding. Within one context a key is bound at
// most once.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", ContextGlobal},
	{ActionHelp, []string{"?"}, "Show help", ContextGlobal},
	{ActionSwitchFocus, []string{"tab"}, "Switch panel", ContextGlobal},
	{ActionToggleQuiz, []string{"m"}, "Toggle quiz mode", ContextGlobal},
	{ActionPlayPause, []string{" ", "space"}, "Play/pause", ContextGlobal},

	// Playback
	{ActionNextTrack, []string{"n", "pgdown"}, "Next shloka", ContextPlayback},
	{ActionPrevTrack, []string{"p", "pgup"}, "Previous shloka", ContextPlayback},
	{ActionCycleSpeed, []string{"s"}, "Cycle speed", ContextPlayback},
	{ActionCycleRepeat, []string{"R"}, "Cycle repeat mode", ContextPlayback},
	{ActionRepeatEach, []string{"E"}, "Set repeat count", ContextPlayback},
	{ActionToggleShuffle, []string{"S"}, "Toggle shuffle", ContextPlayback},

	// Quiz
	{ActionQuizNext, []string{"n"}, "Next question", ContextQuiz},
	{ActionQuizReveal, []string{"a"}, "Reveal answer", ContextQuiz},
	{ActionQuizAutoplay, []string{"A"}, "Toggle autoplay", ContextQuiz},
	{ActionQuizTime, []string{"t"}, "Set answer time", ContextQuiz},
	{ActionQuizDelay, []string{"d"}, "Set play delay", ContextQuiz},
	{ActionCycleSpeed, []string{"s"}, "Cycle speed", ContextQuiz},

	// Track grid
	{ActionToggle, []string{"x", "enter"}, "Toggle shloka or group", ContextTracks},
	{ActionRange, []string{"r"}, "Select range", ContextTracks},
	{ActionClearSelection, []string{"c"}, "Clear selection", ContextTracks},
	{ActionSavePlaylist, []string{"w"}, "Save as playlist", ContextTracks},
	{ActionSearch, []string{"/"}, "Find by number", ContextTracks},
	{ActionClearSearch, []string{"esc"}, "Show all shlokas", ContextTracks},
	{ActionMoveUp, []string{"k", "up"}, "Move up", ContextTracks},
	{ActionMoveDown, []string{"j", "down"}, "Move down", ContextTracks},
	{ActionMoveLeft, []string{"h", "left"}, "Move left", ContextTracks},
	{ActionMoveRight, []string{"l", "right"}, "Move right", ContextTracks},
	{ActionJumpStart, []string{"g", "home"}, "First shloka", ContextTracks},
	{ActionJumpEnd, []string{"G", "end"}, "Last shloka", ContextTracks},

	// Playlists and recents
	{ActionToggle, []string{"x", "enter"}, "Check entry", ContextLibrary},
	{ActionLoadPlaylist, []string{"L"}, "Load playlist into grid", ContextLibrary},
	{ActionDeletePlaylist, []string{"D"}, "Delete playlist", ContextLibrary},
	{ActionClearHistory, []string{"H"}, "Clear history", ContextLibrary},
	{ActionMoveUp, []string{"k", "up"}, "Move up", ContextLibrary},
	{ActionMoveDown, []string{"j", "down"}, "Move down", ContextLibrary},
	{ActionJumpStart, []string{"g", "home"}, "First entry", ContextLibrary},
	{ActionJumpEnd, []string{"G", "end"}, "Last entry", ContextLibrary},
}

// ByContext returns all bindings for a given context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, b := range Bindings {
		if b.Context == context {
			result = append(result, b)
		}
	}
	return result
}
