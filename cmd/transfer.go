package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/llehouerou/shloka/internal/catalog"
	"github.com/llehouerou/shloka/internal/errmsg"
	"github.com/llehouerou/shloka/internal/state"
)

// playlistFile is the on-disk exchange format.
type playlistFile struct {
	Playlists []state.Playlist `yaml:"playlists"`
}

func exportCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.yaml>",
		Short: "Write saved playlists to a YAML file (- for stdout)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, shutdown, err := openState(global)
			if err != nil {
				return err
			}
			defer shutdown()

			list := st.Playlists()
			if args[0] == "-" {
				return writePlaylists(cmd.OutOrStdout(), list)
			}
			f, err := os.Create(args[0])
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpPlaylistExport, err))
			}
			if err := writePlaylists(f, list); err != nil {
				f.Close()
				return errors.New(errmsg.Format(errmsg.OpPlaylistExport, err))
			}
			if err := f.Close(); err != nil {
				return errors.New(errmsg.Format(errmsg.OpPlaylistExport, err))
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d playlists to %s.\n", len(list), args[0])
			return nil
		},
	}
}

func importCmd(global *globalFlags) *cobra.Command {
	var overwrite bool
	c := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Add playlists from a YAML file (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.New(errmsg.Format(errmsg.OpPlaylistImport, err))
				}
				defer f.Close()
				r = f
			}
			list, err := readPlaylists(r)
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpPlaylistImport, err))
			}

			st, shutdown, err := openState(global)
			if err != nil {
				return err
			}
			defer shutdown()

			if err := checkTracks(st.cat, list); err != nil {
				return errors.New(errmsg.Format(errmsg.OpPlaylistImport, err))
			}
			n, err := st.ImportPlaylists(list, overwrite)
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpPlaylistImport, err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d playlists.\n", n, len(list))
			return nil
		},
	}
	c.Flags().BoolVar(&overwrite, "overwrite", false, "replace playlists that already exist")
	return c
}

func writePlaylists(w io.Writer, list []state.Playlist) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(playlistFile{Playlists: list}); err != nil {
		return err
	}
	return enc.Close()
}

func readPlaylists(r io.Reader) ([]state.Playlist, error) {
	var pf playlistFile
	if err := yaml.NewDecoder(r).Decode(&pf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return pf.Playlists, nil
}

// checkTracks rejects the whole file when any playlist names a track the
// catalog does not have.
func checkTracks(cat *catalog.Catalog, list []state.Playlist) error {
	for _, p := range list {
		for _, id := range p.Tracks {
			if !cat.Valid(id) {
				return fmt.Errorf("playlist %q: track %d is outside 1-%d", p.Name, id, cat.Total())
			}
		}
	}
	return nil
}
