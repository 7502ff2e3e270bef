package providers

import (
	"github.com/samber/do/v2"

	"github.com/llehouerou/shloka/internal/config"
	"github.com/llehouerou/shloka/internal/state"
	"github.com/llehouerou/shloka/internal/store"
)

// StateHandle wraps the persistence gateway with shutdown capability.
type StateHandle struct {
	*state.Manager
}

// Shutdown implements do.Shutdownable.
func (h *StateHandle) Shutdown() error {
	return h.Close()
}

// ProvideState opens the configured store. A store that fails to open
// leaves the gateway unavailable instead of failing startup.
func ProvideState(i do.Injector) (*StateHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := component(i, "state")

	var kv store.Store
	opened, err := store.Open(cfg.StorageDriver(), cfg.Storage.Path)
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.Storage.Driver).Msg("open storage")
	} else {
		kv = opened
	}

	m := state.New(kv,
		state.WithMaxRecent(cfg.History.MaxRecent),
		state.WithLogger(log),
	)
	return &StateHandle{Manager: m}, nil
}
