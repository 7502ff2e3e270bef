package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/shloka/internal/di/providers"
	"github.com/llehouerou/shloka/internal/loop"
	"github.com/llehouerou/shloka/internal/notice"
	"github.com/llehouerou/shloka/internal/playback"
	"github.com/llehouerou/shloka/internal/session"
)

type playFlags struct {
	quiz     bool
	playlist string
	speed    float64
	repeat   string
	each     int
	shuffle  bool
}

func playCmd(global *globalFlags) *cobra.Command {
	flags := &playFlags{}
	c := &cobra.Command{
		Use:   "play [range | id...]",
		Short: "Play shlokas without the TUI",
		Long: "Plays a range such as 11-20, a list of track numbers, or a saved playlist.\n" +
			"Notices are printed as they happen. Stops when the playlist finishes or on Ctrl+C.",
		Example: "  shloka play 1-10\n  shloka play 3 7 12 --repeat each --each 3\n  shloka play 1-50 --quiz",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && flags.playlist == "" {
				return errors.New("give a range, track numbers or --playlist")
			}
			return runHeadless(cmd.Context(), global, flags, args, cmd.OutOrStdout())
		},
	}
	f := c.Flags()
	f.BoolVar(&flags.quiz, "quiz", false, "quiz mode: play random shlokas and reveal their number")
	f.StringVarP(&flags.playlist, "playlist", "p", "", "play a saved playlist")
	f.Float64Var(&flags.speed, "speed", 0, "playback speed: "+speedList())
	f.StringVar(&flags.repeat, "repeat", "", "repeat mode: none, track, each or playlist")
	f.IntVar(&flags.each, "each", 0, "times to play each track (implies --repeat each)")
	f.BoolVar(&flags.shuffle, "shuffle", false, "shuffle play order")
	return c
}

func runHeadless(ctx context.Context, global *globalFlags, flags *playFlags, args []string, out io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	injector := global.container()
	defer injector.Shutdown() //nolint:errcheck // best effort on exit

	core, err := do.Invoke[*providers.CoreHandle](injector)
	if err != nil {
		return err
	}
	lp := do.MustInvoke[*loop.Loop](injector)
	hub := do.MustInvoke[*notice.Hub](injector)
	do.MustInvoke[*providers.DesktopNotifierHandle](injector)
	do.MustInvoke[*providers.MPRISHandle](injector)

	var once sync.Once
	finished := make(chan struct{})
	unsubscribe := hub.Subscribe(notice.SinkFunc(func(n notice.Notice) {
		fmt.Fprintf(out, "[%s] %s\n", n.Level, n.Text)
		if n.Kind == notice.KindFinished || n.Kind == notice.KindTooManyFailures {
			once.Do(func() { close(finished) })
		}
	}))
	defer unsubscribe()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return lp.Run(gctx)
	})
	g.Go(func() error {
		var startErr error
		if err := lp.Call(gctx, func() {
			core.Start()
			startErr = startHeadless(core.Core, flags, args)
		}); err != nil {
			return err
		}
		if startErr != nil {
			return startErr
		}
		select {
		case <-finished:
		case <-gctx.Done():
		}
		// Stop audio on the loop before it exits.
		_ = lp.Call(gctx, core.Close)
		lp.Stop()
		return nil
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// startHeadless applies the command line to the core. It runs on the loop.
func startHeadless(core *session.Core, flags *playFlags, args []string) error {
	if err := selectFromArgs(core, flags.playlist, args); err != nil {
		return err
	}
	if flags.speed != 0 {
		if err := core.SetSpeed(flags.speed); err != nil {
			return err
		}
	}
	repeat := flags.repeat
	if repeat == "" && flags.each != 0 {
		repeat = playback.RepeatEachN.String()
	}
	if repeat != "" {
		mode, err := playback.ParseRepeatMode(repeat)
		if err != nil {
			return err
		}
		if flags.each != 0 && mode != playback.RepeatEachN {
			return fmt.Errorf("--each needs --repeat each, got --repeat %s", repeat)
		}
		if flags.each != 0 {
			if err := core.SetRepeatEach(flags.each); err != nil {
				return err
			}
		}
		if err := core.SetRepeatMode(mode); err != nil {
			return err
		}
	}
	if flags.shuffle != core.Snapshot().Playback.Settings.Shuffle {
		core.ToggleShuffle()
	}

	if flags.quiz {
		core.EnterQuizMode()
		if !core.Snapshot().Quiz.Settings.AutoPlay {
			core.QuizToggleAutoplay()
		}
		return core.QuizPlayNext()
	}
	return core.Play()
}

func speedList() string {
	parts := make([]string, len(playback.Speeds))
	for i, v := range playback.Speeds {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ", ")
}

// selectFromArgs accepts a playlist name, a single "a-b" range, or track
// numbers.
func selectFromArgs(core *session.Core, playlist string, args []string) error {
	if playlist != "" {
		return core.LoadPlaylist(playlist)
	}
	if len(args) == 1 && strings.Contains(args[0], "-") {
		return core.ApplyRangeText(args[0])
	}
	core.ClearSelection()
	for _, a := range args {
		id, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return fmt.Errorf("invalid track number %q", a)
		}
		if err := core.SelectTrack(id, true); err != nil {
			return fmt.Errorf("track %d: %w", id, err)
		}
	}
	return nil
}
