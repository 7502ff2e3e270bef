package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Play       string
	Pause      string
	Stop       string
	Playlist   string
	Recent     string
	Quiz       string
	Shuffle    string
	RepeatAll  string
	RepeatOne  string
	RepeatEach string
}

var (
	nerdIcons = Icons{
		Play:       "\uf04b",      // nf-fa-play
		Pause:      "\uf04c",      // nf-fa-pause
		Stop:       "\uf04d",      // nf-fa-stop
		Playlist:   "\U000f0cb8 ", // nf-md-playlist_music
		Recent:     "\uf1da ",     // nf-fa-history
		Quiz:       "\uf059 ",     // nf-fa-question_circle
		Shuffle:    "\U000f049f",  // nf-md-shuffle
		RepeatAll:  "\U000f0456",  // nf-md-repeat
		RepeatOne:  "\U000f0458",  // nf-md-repeat_once
		RepeatEach: "\U000f0456",  // nf-md-repeat
	}

	unicodeIcons = Icons{
		Play:       "▶",
		Pause:      "⏸",
		Stop:       "■",
		Playlist:   "📋 ",
		Recent:     "🕘 ",
		Quiz:       "❓ ",
		Shuffle:    "🔀",
		RepeatAll:  "🔁",
		RepeatOne:  "🔂",
		RepeatEach: "🔁",
	}

	noneIcons = Icons{
		Play:       ">",
		Pause:      "||",
		Stop:       "[]",
		Shuffle:    "[S]",
		RepeatAll:  "[R]",
		RepeatOne:  "[1]",
		RepeatEach: "[N]",
	}

	// current holds the active icon set
	current = unicodeIcons
)

// Init selects the icon set. Call this once at startup with the config value.
// Unknown styles fall back to plain text.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = noneIcons
	}
}

// Play returns the playing indicator.
func Play() string { return current.Play }

// Pause returns the paused indicator.
func Pause() string { return current.Pause }

// Stop returns the stopped indicator.
func Stop() string { return current.Stop }

// FormatPlaylist prefixes a playlist heading with its icon.
func FormatPlaylist(name string) string {
	return current.Playlist + name
}

// FormatRecent prefixes a history heading with its icon.
func FormatRecent(name string) string {
	return current.Recent + name
}

// FormatQuiz prefixes a quiz heading with its icon.
func FormatQuiz(name string) string {
	return current.Quiz + name
}

// Shuffle returns the shuffle icon.
func Shuffle() string { return current.Shuffle }

// RepeatAll returns the repeat playlist icon.
func RepeatAll() string { return current.RepeatAll }

// RepeatOne returns the repeat track icon.
func RepeatOne() string { return current.RepeatOne }

// RepeatEach returns the repeat each icon.
func RepeatEach() string { return current.RepeatEach }
