package playerbar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/shloka/internal/icons"
	"github.com/llehouerou/shloka/internal/playback"
	"github.com/llehouerou/shloka/internal/player"
	"github.com/llehouerou/shloka/internal/quiz"
	"github.com/llehouerou/shloka/internal/ui/testutil"
)

func TestRender_Regular(t *testing.T) {
	s := State{
		Player:   player.Playing,
		Label:    "Shlok 12",
		Session:  playback.StatePlaying,
		Index:    2,
		Total:    5,
		Position: 30 * time.Second,
		Duration: 95 * time.Second,
		Settings: playback.Settings{Speed: 1.5, Repeat: playback.RepeatEachN, RepeatEach: 3, Shuffle: true},
	}

	out := testutil.StripANSI(Render(s, 140))

	assert.Contains(t, out, "Shlok 12")
	assert.Contains(t, out, "3/5")
	assert.Contains(t, out, "0:30 / 1:35")
	assert.Contains(t, out, "1.5x · repeat each ×3 · shuffle")
	assert.Contains(t, out, icons.Play())
}

func TestRender_RegularIdle(t *testing.T) {
	s := State{Session: playback.StateIdle, Settings: playback.DefaultSettings()}
	out := testutil.StripANSI(Render(s, 80))
	assert.Contains(t, out, "Idle")
	assert.Contains(t, out, "1x")
}

func TestRender_Failures(t *testing.T) {
	s := State{Label: "Shlok 4", Total: 3, Failures: 2, Settings: playback.DefaultSettings()}
	assert.Contains(t, testutil.StripANSI(Render(s, 120)), "2 failed")
}

func TestRender_QuizHidesAnswer(t *testing.T) {
	s := State{
		QuizMode:     true,
		Label:        "Shlok ?",
		QuizState:    quiz.StateListening,
		QuizSettings: quiz.Settings{Time: 20, Delay: 3},
		Remaining:    12,
		Question:     2,
		PoolSize:     10,
		Settings:     playback.DefaultSettings(),
	}

	out := testutil.StripANSI(Render(s, 120))
	assert.Contains(t, out, "QUIZ")
	assert.Contains(t, out, "Q2/10")
	assert.Contains(t, out, "Shlok ?")
	assert.Contains(t, out, "12s")
	assert.Contains(t, out, "20s · delay 3s · manual")
}

func TestRender_QuizTimedOut(t *testing.T) {
	s := State{QuizMode: true, Label: "Shlok 7", QuizState: quiz.StateTimedOut, QuizSettings: quiz.Settings{Time: 20, Delay: 3, AutoPlay: true}}
	out := testutil.StripANSI(Render(s, 120))
	assert.Contains(t, out, "time's up")
	assert.Contains(t, out, "autoplay")
}

func TestCountdown(t *testing.T) {
	out := testutil.StripANSI(countdown(5, 10, 10))
	assert.Equal(t, "▓▓▓▓▓░░░░░ 5s", out)
}

func TestSettingsLabel(t *testing.T) {
	assert.Equal(t, "1x", settingsLabel(playback.DefaultSettings()))
	assert.Equal(t, "1.25x · repeat playlist",
		settingsLabel(playback.Settings{Speed: 1.25, Repeat: playback.RepeatPlaylist, RepeatEach: 1}))
}
