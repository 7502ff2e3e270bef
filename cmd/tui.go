package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/do/v2"

	"github.com/llehouerou/shloka/internal/app"
	"github.com/llehouerou/shloka/internal/config"
	"github.com/llehouerou/shloka/internal/di/providers"
	"github.com/llehouerou/shloka/internal/icons"
	"github.com/llehouerou/shloka/internal/logging"
	"github.com/llehouerou/shloka/internal/loop"
	"github.com/llehouerou/shloka/internal/notice"
)

// runTUI hosts the core inside a bubbletea program. The program drains the
// event loop itself, so the core only ever runs on the Update goroutine.
func runTUI(ctx context.Context, flags *globalFlags) error {
	injector := flags.container()
	defer injector.Shutdown() //nolint:errcheck // best effort on exit

	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		return err
	}
	logger, err := do.Invoke[*providers.LoggerHandle](injector)
	if err != nil {
		return err
	}
	core, err := do.Invoke[*providers.CoreHandle](injector)
	if err != nil {
		return err
	}
	lp := do.MustInvoke[*loop.Loop](injector)
	defer lp.Stop()
	hub := do.MustInvoke[*notice.Hub](injector)

	icons.Init(cfg.UI.Icons)

	model := app.New(core.Core, lp.C(), hub, app.Options{
		ToastDuration: cfg.UI.ToastDuration,
		Logger:        logging.Component(logger.Logger, "ui"),
	})
	defer model.Close()

	// Adapters attach after the model subscribed so the startup warning
	// reaches the toast line too.
	do.MustInvoke[*providers.DesktopNotifierHandle](injector)
	do.MustInvoke[*providers.MPRISHandle](injector)

	core.Start()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
