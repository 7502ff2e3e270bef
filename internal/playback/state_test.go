package playback

import (
	"errors"
	"testing"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "Idle"},
		{StatePlaying, "Playing"},
		{StatePaused, "Paused"},
		{StateFinished, "Finished"},
		{StateFailed, "Failed"},
		{State(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestRepeatMode_Next(t *testing.T) {
	m := RepeatNone
	var seen []string
	for range 5 {
		seen = append(seen, m.String())
		m = m.Next()
	}
	want := []string{"None", "Track", "Each", "Playlist", "None"}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("cycle = %v, want %v", seen, want)
		}
	}
}

func TestParseRepeatMode(t *testing.T) {
	tests := []struct {
		in   string
		want RepeatMode
	}{
		{"", RepeatNone},
		{"off", RepeatNone},
		{"Track", RepeatTrack},
		{"each", RepeatEachN},
		{" playlist ", RepeatPlaylist},
	}
	for _, tt := range tests {
		got, err := ParseRepeatMode(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseRepeatMode(%q) = %v, %v", tt.in, got, err)
		}
	}
	if _, err := ParseRepeatMode("sometimes"); !errors.Is(err, ErrInvalidRepeatMode) {
		t.Errorf("ParseRepeatMode(sometimes) err = %v", err)
	}
}

func TestSpeeds(t *testing.T) {
	if got := NextSpeed(2.0); got != 1.0 {
		t.Errorf("NextSpeed(2) = %v, want 1", got)
	}
	if got := NextSpeed(1.25); got != 1.5 {
		t.Errorf("NextSpeed(1.25) = %v, want 1.5", got)
	}
	if got := NextSpeed(0.7); got != 1.0 {
		t.Errorf("NextSpeed(0.7) = %v, want 1", got)
	}
	if v, err := ParseSpeed("1.25x"); err != nil || v != 1.25 {
		t.Errorf("ParseSpeed(1.25x) = %v, %v", v, err)
	}
	if _, err := ParseSpeed("1.75"); !errors.Is(err, ErrInvalidSpeed) {
		t.Errorf("ParseSpeed(1.75) err = %v", err)
	}
	if got := FormatSpeed(1.5); got != "1.5x" {
		t.Errorf("FormatSpeed(1.5) = %q", got)
	}
}

func TestSettings_Validate(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	tests := []struct {
		name string
		s    Settings
		want error
	}{
		{"speed", Settings{Speed: 3, RepeatEach: 1}, ErrInvalidSpeed},
		{"count low", Settings{Speed: 1, RepeatEach: 0}, ErrInvalidRepeatCount},
		{"count high", Settings{Speed: 1, RepeatEach: 101}, ErrInvalidRepeatCount},
		{"mode", Settings{Speed: 1, RepeatEach: 1, Repeat: RepeatMode(9)}, ErrInvalidRepeatMode},
	}
	for _, tt := range tests {
		if err := tt.s.Validate(); !errors.Is(err, tt.want) {
			t.Errorf("%s: Validate() = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestBreaker(t *testing.T) {
	b := NewBreaker(3)
	if b.Fail() || b.Fail() {
		t.Fatal("tripped early")
	}
	b.Reset()
	if b.Count() != 0 {
		t.Errorf("Count() = %d after Reset", b.Count())
	}
	b.Fail()
	b.Fail()
	if !b.Fail() {
		t.Error("third consecutive failure should trip")
	}
	def := NewBreaker(0)
	if def.Max() != DefaultMaxErrorSkip {
		t.Error("zero max should fall back to default")
	}
}
