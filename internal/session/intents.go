package session

import (
	"errors"
	"fmt"

	"github.com/llehouerou/shloka/internal/errmsg"
	"github.com/llehouerou/shloka/internal/notice"
	"github.com/llehouerou/shloka/internal/playback"
	"github.com/llehouerou/shloka/internal/quiz"
	"github.com/llehouerou/shloka/internal/selection"
	"github.com/llehouerou/shloka/internal/state"
)

// --- Selection ---

func (c *Core) SelectTrack(id int, checked bool) error {
	return c.selectionChanged(c.sel.SelectTrack(id, checked))
}

func (c *Core) ToggleTrack(id int) error {
	return c.selectionChanged(c.sel.ToggleTrack(id))
}

func (c *Core) SelectPlaylist(name string, checked bool) error {
	return c.selectionChanged(c.sel.SelectPlaylist(name, checked))
}

// SelectRecent checks a recent entry by its id.
func (c *Core) SelectRecent(id string, checked bool) error {
	return c.selectionChanged(c.sel.SelectRecent(id, checked))
}

// ApplyRange replaces the selection with start..end. An invalid range is
// reported and leaves the selection as it was.
func (c *Core) ApplyRange(start, end int) error {
	if err := c.sel.ApplyRange(start, end); err != nil {
		c.sink.Notify(notice.Notice{
			Level: notice.Warn,
			Kind:  notice.KindInvalidRange,
			Text:  fmt.Sprintf("Invalid range. Enter values between 1 and %d.", c.cat.Total()),
		})
		return err
	}
	return c.selectionChanged(nil)
}

// ApplyRangeText parses "a-b" or "a" and applies it.
func (c *Core) ApplyRangeText(text string) error {
	start, end, err := selection.ParseRange(text)
	if err != nil {
		c.sink.Notify(notice.Notice{
			Level: notice.Warn,
			Kind:  notice.KindInvalidRange,
			Text:  fmt.Sprintf("Invalid range. Enter values between 1 and %d.", c.cat.Total()),
		})
		return err
	}
	return c.ApplyRange(start, end)
}

func (c *Core) ToggleGroup(groupID int) error {
	return c.selectionChanged(c.sel.ToggleGroup(groupID))
}

func (c *Core) ClearSelection() {
	c.sel.Clear()
	_ = c.selectionChanged(nil)
}

// LoadPlaylist copies a saved playlist into the individual track selection.
func (c *Core) LoadPlaylist(name string) error {
	if err := c.sel.LoadPlaylist(name); err != nil {
		c.fail(errmsg.FormatWith(errmsg.OpPlaylistLoad, name, err))
		return err
	}
	c.sink.Notify(notice.Infof(fmt.Sprintf("Loaded playlist %q.", name)))
	return c.selectionChanged(nil)
}

// selectionChanged makes the next quiz question read the new selection.
func (c *Core) selectionChanged(err error) error {
	if err != nil {
		return err
	}
	if c.mode == selection.Quiz {
		c.quiz.ResetPool()
	}
	return nil
}

// --- Playback ---

// Play starts a session over the active selection, or a fresh quiz round in
// quiz mode.
func (c *Core) Play() error {
	if c.mode == selection.Quiz {
		c.quiz.ResetPool()
		return c.quiz.PlayNext()
	}
	return c.playback.Start(c.sel.Active(), c.playback.Settings())
}

// PauseResume toggles the active session, starting one when none runs.
func (c *Core) PauseResume() error {
	if c.mode == selection.Quiz {
		if c.quiz.State() == quiz.StateIdle {
			return c.Play()
		}
		return c.quiz.PauseResume()
	}
	if !c.playback.State().IsActive() {
		return c.Play()
	}
	return c.playback.TogglePause()
}

// Next skips to the next track, or the next question in quiz mode.
func (c *Core) Next() error {
	if c.mode == selection.Quiz {
		return c.quiz.PlayNext()
	}
	return c.playback.Next()
}

func (c *Core) Previous() error {
	if c.mode == selection.Quiz {
		return ErrQuizMode
	}
	return c.playback.Previous()
}

func (c *Core) SetSpeed(v float64) error {
	if err := c.playback.SetSpeed(v); err != nil {
		c.fail(errmsg.Format(errmsg.OpPlaybackSpeed, err))
		return err
	}
	return nil
}

// CycleSpeed moves through the speed list and announces the new value.
func (c *Core) CycleSpeed() float64 {
	v := c.playback.CycleSpeed()
	c.sink.Notify(notice.Infof("Speed " + playback.FormatSpeed(v)))
	return v
}

func (c *Core) SetRepeatMode(m playback.RepeatMode) error {
	if err := c.playback.SetRepeatMode(m); err != nil {
		c.fail(errmsg.Format(errmsg.OpPlaybackRepeat, err))
		return err
	}
	return nil
}

// CycleRepeatMode moves to the next repeat mode and returns it.
func (c *Core) CycleRepeatMode() playback.RepeatMode {
	m := c.playback.Settings().Repeat.Next()
	_ = c.playback.SetRepeatMode(m)
	return m
}

func (c *Core) SetRepeatEach(n int) error {
	if err := c.playback.SetRepeatEach(n); err != nil {
		c.fail(errmsg.Format(errmsg.OpPlaybackRepeat, err))
		return err
	}
	return nil
}

// ToggleShuffle flips shuffle for the next session and returns it.
func (c *Core) ToggleShuffle() bool {
	on := !c.playback.Settings().Shuffle
	c.playback.SetShuffle(on)
	return on
}

// --- Mode ---

// EnterQuizMode stops any regular session and hands the media primitive to
// the quiz.
func (c *Core) EnterQuizMode() {
	if c.mode == selection.Quiz {
		return
	}
	c.playback.Release()
	c.sel.SetMode(selection.Quiz)
	c.mode = selection.Quiz
	c.quiz.Enter()
	c.log.Info().Msg("quiz mode")
}

// ExitQuizMode cancels every quiz timer and returns to regular mode. A
// combined quiz selection collapses to one source.
func (c *Core) ExitQuizMode() {
	if c.mode != selection.Quiz {
		return
	}
	c.quiz.Exit()
	c.sel.SetMode(selection.Regular)
	c.mode = selection.Regular
	c.log.Info().Msg("regular mode")
}

// ToggleQuizMode switches mode and reports whether quiz mode is now on.
func (c *Core) ToggleQuizMode() bool {
	if c.mode == selection.Quiz {
		c.ExitQuizMode()
	} else {
		c.EnterQuizMode()
	}
	return c.mode == selection.Quiz
}

// --- Quiz ---

func (c *Core) QuizPlayNext() error {
	if c.mode != selection.Quiz {
		return ErrNotQuizMode
	}
	return c.quiz.PlayNext()
}

func (c *Core) QuizRevealAnswer() error {
	if c.mode != selection.Quiz {
		return ErrNotQuizMode
	}
	return c.quiz.RevealAnswer()
}

func (c *Core) QuizToggleAutoplay() bool {
	return c.quiz.ToggleAutoPlay()
}

func (c *Core) SetQuizTime(s int) error {
	if err := c.quiz.SetTime(s); err != nil {
		c.fail(errmsg.Format(errmsg.OpQuizTime, err))
		return err
	}
	return nil
}

func (c *Core) SetQuizDelay(s int) error {
	if err := c.quiz.SetDelay(s); err != nil {
		c.fail(errmsg.Format(errmsg.OpQuizDelay, err))
		return err
	}
	return nil
}

// --- Library ---

// CanSave reports whether the current selection can be saved as a playlist.
func (c *Core) CanSave() bool {
	return c.sel.HasTrackSelection() && c.mode != selection.Quiz
}

// SavePlaylist saves the individually checked tracks under name.
func (c *Core) SavePlaylist(name string) error {
	if !c.CanSave() {
		c.sink.Notify(notice.Notice{Level: notice.Warn, Kind: notice.KindEmptySelection, Text: ErrSaveUnavailable.Error() + "."})
		return ErrSaveUnavailable
	}
	err := c.store.SavePlaylist(name, c.sel.SelectedTracks())
	switch {
	case err == nil:
		c.sink.Notify(notice.Infof(fmt.Sprintf("Playlist %q saved.", name)))
	case errors.Is(err, state.ErrNameEmpty):
		c.sink.Notify(notice.Notice{Level: notice.Warn, Kind: notice.KindNameEmpty, Text: "Please enter a playlist name."})
	case errors.Is(err, state.ErrNameExists):
		c.sink.Notify(notice.Notice{
			Level: notice.Warn,
			Kind:  notice.KindNameExists,
			Text:  fmt.Sprintf("A playlist named %q already exists.", name),
		})
	default:
		c.storageFailed(errmsg.FormatWith(errmsg.OpPlaylistSave, name, err), err)
	}
	return err
}

func (c *Core) DeletePlaylist(name string) error {
	if err := c.store.DeletePlaylist(name); err != nil {
		c.storageFailed(errmsg.FormatWith(errmsg.OpPlaylistDelete, name, err), err)
		return err
	}
	c.sel.ForgetPlaylist(name)
	_ = c.selectionChanged(nil)
	c.sink.Notify(notice.Infof(fmt.Sprintf("Playlist %q deleted.", name)))
	return nil
}

// ClearHistory forgets every recent selection.
func (c *Core) ClearHistory() error {
	if err := c.store.ClearRecent(); err != nil {
		c.storageFailed(errmsg.Format(errmsg.OpHistoryClear, err), err)
		return err
	}
	c.sel.ForgetRecents()
	_ = c.selectionChanged(nil)
	c.sink.Notify(notice.Infof("History cleared."))
	return nil
}

func (c *Core) storageFailed(text string, err error) {
	kind := notice.KindNone
	if errors.Is(err, state.ErrUnavailable) {
		kind = notice.KindStorageUnavailable
	}
	c.sink.Notify(notice.Notice{Level: notice.Error, Kind: kind, Text: text})
}

func (c *Core) fail(text string) {
	c.sink.Notify(notice.Notice{Level: notice.Error, Text: text})
}
