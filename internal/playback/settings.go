package playback

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Bounds of the per-track repeat count.
const (
	MinRepeatEach = 1
	MaxRepeatEach = 100
)

// Speeds lists the allowed playback rates in cycling order.
var Speeds = []float64{1.0, 1.25, 1.5, 2.0}

var (
	ErrInvalidSpeed       = errors.New("unsupported playback speed")
	ErrInvalidRepeatCount = errors.New("repeat count out of range")
	ErrInvalidRepeatMode  = errors.New("unknown repeat mode")
)

// Settings are the user's playback preferences.
type Settings struct {
	Speed      float64
	Repeat     RepeatMode
	RepeatEach int
	Shuffle    bool
}

// DefaultSettings returns normal speed, no repeat, no shuffle.
func DefaultSettings() Settings {
	return Settings{Speed: 1.0, Repeat: RepeatNone, RepeatEach: MinRepeatEach}
}

func (s Settings) Validate() error {
	if !ValidSpeed(s.Speed) {
		return fmt.Errorf("%w: %v", ErrInvalidSpeed, s.Speed)
	}
	if !s.Repeat.valid() {
		return fmt.Errorf("%w: %d", ErrInvalidRepeatMode, s.Repeat)
	}
	if s.RepeatEach < MinRepeatEach || s.RepeatEach > MaxRepeatEach {
		return fmt.Errorf("%w: %d", ErrInvalidRepeatCount, s.RepeatEach)
	}
	return nil
}

// ValidSpeed reports whether v is one of Speeds.
func ValidSpeed(v float64) bool {
	return slices.Contains(Speeds, v)
}

// NextSpeed returns the speed after v, wrapping to the first. Unknown values
// restart the cycle.
func NextSpeed(v float64) float64 {
	i := slices.Index(Speeds, v)
	return Speeds[(i+1)%len(Speeds)]
}

// ParseSpeed reads "1.25" or "1.25x".
func ParseSpeed(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "x"), 64)
	if err != nil || !ValidSpeed(v) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSpeed, s)
	}
	return v, nil
}

// FormatSpeed renders a speed as "1.25x".
func FormatSpeed(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "x"
}
