package providers

import (
	"github.com/samber/do/v2"

	"github.com/llehouerou/shloka/internal/catalog"
	"github.com/llehouerou/shloka/internal/config"
	"github.com/llehouerou/shloka/internal/loop"
	"github.com/llehouerou/shloka/internal/notice"
	"github.com/llehouerou/shloka/internal/session"
)

// ProvideNoticeHub provides the fan-out for user notices.
func ProvideNoticeHub(_ do.Injector) (*notice.Hub, error) {
	return notice.NewHub(), nil
}

// CoreHandle wraps the session core with shutdown capability.
type CoreHandle struct {
	*session.Core
}

// Shutdown implements do.Shutdownable.
func (h *CoreHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideCore wires the session core. It must only be used from the event
// loop goroutine.
func ProvideCore(i do.Injector) (*CoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	cat := do.MustInvoke[*catalog.Catalog](i)
	st := do.MustInvoke[*StateHandle](i)
	p := do.MustInvoke[*PlayerHandle](i)
	lp := do.MustInvoke[*loop.Loop](i)
	hub := do.MustInvoke[*notice.Hub](i)

	sc, err := cfg.Session()
	if err != nil {
		return nil, err
	}
	core := session.New(cat, st.Manager, p.Player, loop.Clock(lp),
		session.WithSink(hub),
		session.WithLogger(component(i, "session")),
		session.WithConfig(sc),
	)
	return &CoreHandle{Core: core}, nil
}
