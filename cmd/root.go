// Package cmd holds the shloka command line.
package cmd

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/llehouerou/shloka/internal/di"
	"github.com/llehouerou/shloka/internal/di/providers"
)

type globalFlags struct {
	config  string
	storage string
	logFile string
}

// NewRootCmd builds the command tree. Without a subcommand it runs the TUI.
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "shloka",
		Short:         "Play and quiz yourself on numbered shloka recordings",
		Version:       appVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), flags)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.config, "config", "", "config file (default $XDG_CONFIG_HOME/shloka/config.toml)")
	pf.StringVar(&flags.storage, "storage", "", "storage driver override: sqlite, badger or memory")
	pf.StringVar(&flags.logFile, "log-file", "", "log file override")

	root.AddCommand(
		playCmd(flags),
		playlistsCmd(flags),
		historyCmd(flags),
		exportCmd(flags),
		importCmd(flags),
		urlCmd(flags),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "shloka:", err)
		os.Exit(1)
	}
}

func (f *globalFlags) container() *do.RootScope {
	return di.NewContainer(providers.Params{
		ConfigPath: f.config,
		Storage:    f.storage,
		LogFile:    f.logFile,
	})
}

func appVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" {
		return "unknown"
	}
	return bi.Main.Version
}
