package icons

import (
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name     string
		style    string
		expected Icons
	}{
		{"nerd style", "nerd", nerdIcons},
		{"unicode style", "unicode", unicodeIcons},
		{"none style", "none", noneIcons},
		{"empty string defaults to none", "", noneIcons},
		{"unknown style defaults to none", "invalid", noneIcons},
		{"case sensitive", "NERD", noneIcons},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init(tt.style)
			if current != tt.expected {
				t.Errorf("Init(%q) selected the wrong icon set", tt.style)
			}
		})
	}

	Init("unicode")
}

func TestStatusIcons(t *testing.T) {
	defer Init("unicode")

	Init("none")
	if Play() != ">" || Pause() != "||" || Stop() != "[]" {
		t.Errorf("none style: got %q %q %q", Play(), Pause(), Stop())
	}

	Init("unicode")
	if Play() != "▶" {
		t.Errorf("unicode Play() = %q, want ▶", Play())
	}
}

func TestFormatHeadings(t *testing.T) {
	defer Init("unicode")

	Init("none")
	if got := FormatPlaylist("Playlists"); got != "Playlists" {
		t.Errorf("FormatPlaylist() = %q, want plain name", got)
	}
	if got := FormatRecent("Recent"); got != "Recent" {
		t.Errorf("FormatRecent() = %q, want plain name", got)
	}

	for _, style := range []string{"nerd", "unicode"} {
		Init(style)
		for _, got := range []string{FormatPlaylist("P"), FormatRecent("R"), FormatQuiz("Q")} {
			if len(got) <= 1 {
				t.Errorf("%s: heading %q has no icon", style, got)
			}
			if !strings.HasSuffix(got, " P") && !strings.HasSuffix(got, " R") && !strings.HasSuffix(got, " Q") {
				t.Errorf("%s: heading %q should separate icon and name", style, got)
			}
		}
	}
}

func TestRepeatIcons(t *testing.T) {
	defer Init("unicode")

	Init("none")
	got := []string{Shuffle(), RepeatAll(), RepeatOne(), RepeatEach()}
	want := []string{"[S]", "[R]", "[1]", "[N]"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("icon %d = %q, want %q", i, got[i], want[i])
		}
	}
}
