package providers

import (
	"github.com/samber/do/v2"

	"github.com/llehouerou/shloka/internal/config"
	"github.com/llehouerou/shloka/internal/loop"
	"github.com/llehouerou/shloka/internal/mpris"
	"github.com/llehouerou/shloka/internal/notice"
	"github.com/llehouerou/shloka/internal/notify"
)

// notificationTimeout is how long desktop notifications stay up, in ms.
const notificationTimeout = 5000

// DesktopNotifierHandle detaches desktop notifications from the notice hub.
type DesktopNotifierHandle struct {
	unsubscribe func()
}

// Shutdown implements do.Shutdownable.
func (h *DesktopNotifierHandle) Shutdown() error {
	h.unsubscribe()
	return nil
}

// ProvideDesktopNotifier forwards session-ending notices to the desktop
// when enabled.
func ProvideDesktopNotifier(i do.Injector) (*DesktopNotifierHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	if !cfg.Notifications.Enabled {
		return &DesktopNotifierHandle{unsubscribe: func() {}}, nil
	}
	hub := do.MustInvoke[*notice.Hub](i)

	n, err := notify.New()
	if err != nil {
		return nil, err
	}
	sink := notify.NewSink(n, notificationTimeout, component(i, "notify"))
	return &DesktopNotifierHandle{unsubscribe: hub.Subscribe(sink)}, nil
}

// MPRISHandle wraps the MPRIS adapter with shutdown capability.
type MPRISHandle struct {
	adapter *mpris.Adapter
}

// Shutdown implements do.Shutdownable.
func (h *MPRISHandle) Shutdown() error {
	if h.adapter == nil {
		return nil
	}
	return h.adapter.Close()
}

// ProvideMPRIS exposes the core to media keys when enabled. A missing
// session bus only disables the feature.
func ProvideMPRIS(i do.Injector) (*MPRISHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	if !cfg.MPRIS.Enabled {
		return &MPRISHandle{}, nil
	}
	lp := do.MustInvoke[*loop.Loop](i)
	core := do.MustInvoke[*CoreHandle](i)
	log := component(i, "mpris")

	a, err := mpris.New(lp, core.Core, log)
	if err != nil {
		log.Warn().Err(err).Msg("mpris unavailable")
		return &MPRISHandle{}, nil
	}
	return &MPRISHandle{adapter: a}, nil
}
