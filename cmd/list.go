package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/llehouerou/shloka/internal/catalog"
	"github.com/llehouerou/shloka/internal/di/providers"
	"github.com/llehouerou/shloka/internal/state"
)

func playlistsCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "playlists",
		Short: "List saved playlists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, shutdown, err := openState(global)
			if err != nil {
				return err
			}
			defer shutdown()
			renderPlaylists(cmd.OutOrStdout(), st.Playlists())
			return nil
		},
	}
}

func historyCmd(global *globalFlags) *cobra.Command {
	var clearAll bool
	c := &cobra.Command{
		Use:   "history",
		Short: "List recently played selections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, shutdown, err := openState(global)
			if err != nil {
				return err
			}
			defer shutdown()
			if clearAll {
				if err := st.ClearRecent(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
				return nil
			}
			renderHistory(cmd.OutOrStdout(), st.Recent(), time.Now())
			return nil
		},
	}
	c.Flags().BoolVar(&clearAll, "clear", false, "forget every recent selection")
	return c
}

// offline is the part of the container that commands without audio need.
type offline struct {
	*providers.StateHandle
	cat *catalog.Catalog
}

// openState resolves only the persistence gateway and catalog, leaving audio
// untouched.
func openState(global *globalFlags) (*offline, func(), error) {
	injector := global.container()
	shutdown := func() { _ = injector.Shutdown() }

	st, err := do.Invoke[*providers.StateHandle](injector)
	if err != nil {
		shutdown()
		return nil, nil, err
	}
	if !st.Available() {
		shutdown()
		return nil, nil, state.ErrUnavailable
	}
	cat, err := do.Invoke[*catalog.Catalog](injector)
	if err != nil {
		shutdown()
		return nil, nil, err
	}
	return &offline{StateHandle: st, cat: cat}, shutdown, nil
}

func renderPlaylists(w io.Writer, list []state.Playlist) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No saved playlists.")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Tracks", "Shlokas"})
	for _, p := range list {
		t.AppendRow(table.Row{p.Name, len(p.Tracks), catalog.Label(p.Tracks)})
	}
	t.Render()
}

func renderHistory(w io.Writer, recent []state.RecentEntry, now time.Time) {
	if len(recent) == 0 {
		fmt.Fprintln(w, "No recent selections.")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Shlokas", "Tracks", "Played"})
	for i, e := range recent {
		t.AppendRow(table.Row{i + 1, e.Label, len(e.Tracks), humanize.RelTime(e.SavedAt, now, "ago", "from now")})
	}
	t.Render()
}
