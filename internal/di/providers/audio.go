package providers

import (
	"github.com/samber/do/v2"

	"github.com/llehouerou/shloka/internal/config"
	"github.com/llehouerou/shloka/internal/fetch"
	"github.com/llehouerou/shloka/internal/loop"
	"github.com/llehouerou/shloka/internal/player"
)

// ProvideLoop provides the event loop that owns the core.
func ProvideLoop(_ do.Injector) (*loop.Loop, error) {
	return loop.New(), nil
}

// FetcherHandle wraps the audio fetcher with shutdown capability.
type FetcherHandle struct {
	*fetch.Client
}

// Shutdown implements do.Shutdownable.
func (h *FetcherHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideFetcher provides the cached HTTP fetcher.
func ProvideFetcher(i do.Injector) (*FetcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return &FetcherHandle{Client: fetch.New(fetch.Config{
		CacheItems: cfg.HTTP.CacheItems,
		TTL:        cfg.HTTP.CacheTTL,
		Timeout:    cfg.HTTP.Timeout,
	})}, nil
}

// PlayerHandle wraps the audio player with shutdown capability.
type PlayerHandle struct {
	*player.Player
}

// Shutdown implements do.Shutdownable.
func (h *PlayerHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvidePlayer provides the media primitive. Its callbacks are posted to
// the event loop.
func ProvidePlayer(i do.Injector) (*PlayerHandle, error) {
	lp := do.MustInvoke[*loop.Loop](i)
	f := do.MustInvoke[*FetcherHandle](i)
	return &PlayerHandle{Player: player.New(f.Client, lp.Post, component(i, "player"))}, nil
}
