package app

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/shloka/internal/keymap"
	"github.com/llehouerou/shloka/internal/notice"
	"github.com/llehouerou/shloka/internal/playback"
	"github.com/llehouerou/shloka/internal/quiz"
	"github.com/llehouerou/shloka/internal/session"
	"github.com/llehouerou/shloka/internal/ui/librarypanel"
)

// dispatch turns an action into a core intent. Failures the core already
// reported as notices are only logged here.
func (m *Model) dispatch(a keymap.Action) tea.Cmd {
	switch a {
	case keymap.ActionQuit:
		return tea.Quit
	case keymap.ActionHelp:
		m.openHelp()
	case keymap.ActionSwitchFocus:
		m.switchFocus()
	case keymap.ActionToggleQuiz:
		if m.core.ToggleQuizMode() {
			return m.info("Quiz mode")
		}
		return m.info("Regular mode")

	case keymap.ActionPlayPause:
		m.report(a, m.core.PauseResume())
	case keymap.ActionNextTrack:
		m.report(a, m.core.Next())
	case keymap.ActionQuizNext:
		m.report(a, m.core.QuizPlayNext())
	case keymap.ActionPrevTrack:
		m.report(a, m.core.Previous())
	case keymap.ActionCycleSpeed:
		m.core.CycleSpeed()
	case keymap.ActionCycleRepeat:
		return m.info("Repeat " + strings.ToLower(m.core.CycleRepeatMode().String()))
	case keymap.ActionRepeatEach:
		m.openPrompt(promptRepeatEach)
	case keymap.ActionToggleShuffle:
		return m.info("Shuffle " + onOff(m.core.ToggleShuffle()))

	case keymap.ActionQuizReveal:
		m.report(a, m.core.QuizRevealAnswer())
	case keymap.ActionQuizAutoplay:
		return m.info("Autoplay " + onOff(m.core.QuizToggleAutoplay()))
	case keymap.ActionQuizTime:
		m.openPrompt(promptQuizTime)
	case keymap.ActionQuizDelay:
		m.openPrompt(promptQuizDelay)

	case keymap.ActionToggle:
		m.toggle()
	case keymap.ActionRange:
		m.openPrompt(promptRange)
	case keymap.ActionSearch:
		m.openPrompt(promptSearch)
	case keymap.ActionClearSearch:
		if m.grid.Filter() != "" {
			m.grid.SetFilter("")
			return m.info("Showing all shlokas")
		}
	case keymap.ActionClearSelection:
		m.openConfirm("Clear selection", "Uncheck every shloka, playlist and history entry?", confirmClearSelection{})
	case keymap.ActionSavePlaylist:
		if !m.snap.CanSave {
			return m.showToast(notice.Notice{Level: notice.Warn, Kind: notice.KindEmptySelection, Text: capitalize(session.ErrSaveUnavailable.Error()) + "."})
		}
		m.openPrompt(promptSave)

	case keymap.ActionLoadPlaylist:
		if e, ok := m.selectedPlaylist(); ok {
			m.report(a, m.core.LoadPlaylist(e.Key))
		}
	case keymap.ActionDeletePlaylist:
		if e, ok := m.selectedPlaylist(); ok {
			m.openConfirm("Delete playlist", fmt.Sprintf("Delete playlist %q?", e.Key), confirmDeletePlaylist{name: e.Key})
		}
	case keymap.ActionClearHistory:
		if len(m.snap.Recent) > 0 {
			m.openConfirm("Clear history", "Forget every recent selection?", confirmClearHistory{})
		}
	}
	return nil
}

func (m *Model) report(a keymap.Action, err error) {
	if err != nil {
		m.log.Debug().Err(err).Str("action", string(a)).Msg("intent failed")
	}
}

func (m *Model) toggle() {
	if m.focus == FocusTracks {
		switch t := m.grid.Target(); {
		case t.Group != 0:
			m.report(keymap.ActionToggle, m.core.ToggleGroup(t.Group))
		case t.Track != 0:
			m.report(keymap.ActionToggle, m.core.ToggleTrack(t.Track))
		}
		return
	}

	e, ok := m.library.Selected()
	if !ok {
		return
	}
	switch e.Kind {
	case librarypanel.KindPlaylist:
		checked := slices.Contains(m.snap.CheckedPlaylists, e.Key)
		m.report(keymap.ActionToggle, m.core.SelectPlaylist(e.Key, !checked))
	case librarypanel.KindRecent:
		checked := slices.Contains(m.snap.CheckedRecents, e.Key)
		m.report(keymap.ActionToggle, m.core.SelectRecent(e.Key, !checked))
	}
}

func (m Model) selectedPlaylist() (librarypanel.Entry, bool) {
	if m.focus != FocusLibrary {
		return librarypanel.Entry{}, false
	}
	e, ok := m.library.Selected()
	return e, ok && e.Kind == librarypanel.KindPlaylist
}

// --- prompts ---

type promptKind int

const (
	promptRange promptKind = iota
	promptSave
	promptRepeatEach
	promptQuizTime
	promptQuizDelay
	promptSearch
)

var (
	errNameBlank  = errors.New("enter a playlist name")
	errDigitsOnly = errors.New("enter digits only")
)

func (m *Model) openPrompt(k promptKind) {
	var (
		title, initial, placeholder string
		validate                    func(string) error
	)
	switch k {
	case promptRange:
		title = "Select range"
		placeholder = fmt.Sprintf("1-%d", m.core.Catalog().Total())
	case promptSave:
		title = "Save playlist"
		placeholder = "name"
		validate = func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errNameBlank
			}
			return nil
		}
	case promptRepeatEach:
		title = "Repeat each shloka"
		initial = strconv.Itoa(m.snap.Playback.Settings.RepeatEach)
		validate = intBetween(playback.MinRepeatEach, playback.MaxRepeatEach)
	case promptQuizTime:
		title = "Seconds to answer"
		initial = strconv.Itoa(m.snap.Quiz.Settings.Time)
		validate = intBetween(quiz.MinTime, quiz.MaxTime)
	case promptQuizDelay:
		title = "Seconds of audio before the question"
		initial = strconv.Itoa(m.snap.Quiz.Settings.Delay)
		validate = intBetween(quiz.MinDelay, quiz.MaxDelay)
	case promptSearch:
		title = "Find shloka"
		initial = m.grid.Filter()
		placeholder = "number prefix, empty shows all"
		validate = digitsOnly
	}
	m.input.Start(title, initial, placeholder, k, validate, m.width, m.height)
	m.popup = m.input
}

func (m *Model) submitPrompt(k promptKind, text string) tea.Cmd {
	text = strings.TrimSpace(text)
	n, _ := strconv.Atoi(text)
	switch k {
	case promptRange:
		m.report(keymap.ActionRange, m.core.ApplyRangeText(text))
	case promptSave:
		m.report(keymap.ActionSavePlaylist, m.core.SavePlaylist(text))
	case promptRepeatEach:
		if err := m.core.SetRepeatEach(n); err != nil {
			return nil
		}
		if m.snap.Playback.Settings.Repeat != playback.RepeatEachN {
			m.report(keymap.ActionRepeatEach, m.core.SetRepeatMode(playback.RepeatEachN))
		}
		return m.info(fmt.Sprintf("Repeat each ×%d", n))
	case promptQuizTime:
		if m.core.SetQuizTime(n) == nil {
			return m.info(fmt.Sprintf("Answer time %ds", n))
		}
	case promptQuizDelay:
		if m.core.SetQuizDelay(n) == nil {
			return m.info(fmt.Sprintf("Play delay %ds", n))
		}
	case promptSearch:
		if m.grid.SetFilter(text) == 0 {
			return m.showToast(notice.Notice{Level: notice.Warn, Text: fmt.Sprintf("No shloka starts with %s.", text)})
		}
	}
	return nil
}

func digitsOnly(s string) error {
	for _, r := range strings.TrimSpace(s) {
		if r < '0' || r > '9' {
			return errDigitsOnly
		}
	}
	return nil
}

func intBetween(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < lo || n > hi {
			return fmt.Errorf("enter a number from %d to %d", lo, hi)
		}
		return nil
	}
}

// --- confirmations ---

type (
	confirmClearSelection struct{}
	confirmClearHistory   struct{}
	confirmDeletePlaylist struct{ name string }
)

func (m *Model) openConfirm(title, message string, context any) {
	m.confirm.Show(title, message, context, m.width, m.height)
	m.popup = m.confirm
}

func (m *Model) openHelp() {
	m.help.SetContexts([]string{
		keymap.ContextGlobal, keymap.ContextPlayback, keymap.ContextQuiz,
		keymap.ContextTracks, keymap.ContextLibrary,
	})
	m.help.SetSize(m.width, m.height)
	m.popup = m.help
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
