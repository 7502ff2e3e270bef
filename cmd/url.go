package cmd

import (
	"fmt"
	"strconv"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/llehouerou/shloka/internal/catalog"
)

func urlCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "url <id>...",
		Short: "Print the audio URL of one or more tracks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			injector := global.container()
			defer injector.Shutdown() //nolint:errcheck // nothing to release

			cat, err := do.Invoke[*catalog.Catalog](injector)
			if err != nil {
				return err
			}
			for _, a := range args {
				id, err := strconv.Atoi(a)
				if err != nil || !cat.Valid(id) {
					return fmt.Errorf("track must be a number between 1 and %d, got %q", cat.Total(), a)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cat.URL(id))
			}
			return nil
		},
	}
}
