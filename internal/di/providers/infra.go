// Package providers holds the constructors registered in the DI container.
package providers

import (
	"github.com/rs/zerolog"
	"github.com/samber/do/v2"

	"github.com/llehouerou/shloka/internal/catalog"
	"github.com/llehouerou/shloka/internal/config"
	"github.com/llehouerou/shloka/internal/logging"
)

// Params are the command-line inputs that override configuration.
type Params struct {
	ConfigPath string
	Storage    string // storage driver override, empty keeps the config
	LogFile    string // log file override, empty keeps the config
}

// ProvideConfig loads and validates the configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	params := do.MustInvoke[Params](i)

	cfg, err := config.Load(params.ConfigPath)
	if err != nil {
		return nil, err
	}
	if params.Storage != "" {
		cfg.Storage.Driver = params.Storage
		cfg.Storage.Path = ""
		if err := config.Validate(cfg); err != nil {
			return nil, err
		}
	}
	if params.LogFile != "" {
		cfg.Log.File = params.LogFile
	}
	return cfg, nil
}

// LoggerHandle wraps the logger with its log file.
type LoggerHandle struct {
	zerolog.Logger
	close func() error
}

// Shutdown implements do.Shutdownable.
func (h *LoggerHandle) Shutdown() error {
	return h.close()
}

// ProvideLogger opens the log file.
func ProvideLogger(i do.Injector) (*LoggerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)

	logger, closeFn, err := logging.Open(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("storage", cfg.Storage.Driver).
		Int("tracks", cfg.Catalog.TotalTracks).
		Msg("starting")
	return &LoggerHandle{Logger: logger, close: closeFn}, nil
}

// ProvideCatalog builds the track catalog.
func ProvideCatalog(i do.Injector) (*catalog.Catalog, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return cfg.NewCatalog()
}

func component(i do.Injector, name string) zerolog.Logger {
	return logging.Component(do.MustInvoke[*LoggerHandle](i).Logger, name)
}
