// Package di provides dependency injection configuration for shloka.
package di

import (
	"github.com/samber/do/v2"

	"github.com/llehouerou/shloka/internal/di/providers"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer(params providers.Params) *do.RootScope {
	injector := do.New()

	// Command-line inputs
	do.ProvideValue(injector, params)

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideCatalog)

	// Persistence
	do.Provide(injector, providers.ProvideState)

	// Audio
	do.Provide(injector, providers.ProvideLoop)
	do.Provide(injector, providers.ProvideFetcher)
	do.Provide(injector, providers.ProvidePlayer)

	// Session
	do.Provide(injector, providers.ProvideNoticeHub)
	do.Provide(injector, providers.ProvideCore)

	// Desktop integration
	do.Provide(injector, providers.ProvideDesktopNotifier)
	do.Provide(injector, providers.ProvideMPRIS)

	return injector
}
