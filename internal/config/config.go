package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/shloka/internal/catalog"
	"github.com/llehouerou/shloka/internal/playback"
	"github.com/llehouerou/shloka/internal/quiz"
	"github.com/llehouerou/shloka/internal/session"
	"github.com/llehouerou/shloka/internal/state"
	"github.com/llehouerou/shloka/internal/store"
)

// Environment variables read by Load.
const (
	EnvConfig  = "SHLOKA_CONFIG"
	EnvBaseURL = "SHLOKA_BASE_URL"
)

type Config struct {
	Catalog       CatalogConfig       `koanf:"catalog"`
	Playback      PlaybackConfig      `koanf:"playback"`
	Quiz          QuizConfig          `koanf:"quiz"`
	History       HistoryConfig       `koanf:"history"`
	Storage       StorageConfig       `koanf:"storage"`
	HTTP          HTTPConfig          `koanf:"http"`
	UI            UIConfig            `koanf:"ui"`
	Log           LogConfig           `koanf:"log"`
	Notifications NotificationsConfig `koanf:"notifications"`
	MPRIS         MPRISConfig         `koanf:"mpris"`
}

// CatalogConfig describes the track universe.
type CatalogConfig struct {
	BaseURL     string `koanf:"base_url"     validate:"required,url"`
	TotalTracks int    `koanf:"total_tracks" validate:"min=1,max=999"`
	GroupSize   int    `koanf:"group_size"   validate:"min=1"`
}

// PlaybackConfig holds the initial regular-mode settings.
type PlaybackConfig struct {
	Speed        float64 `koanf:"speed"          validate:"speed"`
	Repeat       string  `koanf:"repeat"         validate:"repeatmode"` // "none", "track", "each", "playlist"
	RepeatEach   int     `koanf:"repeat_each"    validate:"min=1,max=100"`
	Shuffle      bool    `koanf:"shuffle"`
	MaxErrorSkip int     `koanf:"max_error_skip" validate:"min=1,max=50"`
}

// QuizConfig holds the quiz timings, in seconds unless noted.
type QuizConfig struct {
	Time               int           `koanf:"time"                 validate:"min=1,max=300"`
	Delay              int           `koanf:"delay"                validate:"min=1,max=60"`
	AutoPlay           bool          `koanf:"autoplay"`
	AutoAdvanceDelay   time.Duration `koanf:"auto_advance_delay"   validate:"min=0"`
	RevealAdvanceDelay time.Duration `koanf:"reveal_advance_delay" validate:"min=0"`
}

type HistoryConfig struct {
	MaxRecent   int  `koanf:"max_recent"   validate:"min=1,max=50"`
	RestoreLast bool `koanf:"restore_last"`
}

// StorageConfig selects the persistence engine. An empty path uses the XDG
// data directory.
type StorageConfig struct {
	Driver string `koanf:"driver" validate:"oneof=sqlite badger memory"`
	Path   string `koanf:"path"`
}

// HTTPConfig tunes track downloads.
type HTTPConfig struct {
	Timeout    time.Duration `koanf:"timeout"     validate:"gt=0"`
	CacheItems int           `koanf:"cache_items" validate:"min=1"`
	CacheTTL   time.Duration `koanf:"cache_ttl"   validate:"gt=0"`
}

type UIConfig struct {
	ToastDuration time.Duration `koanf:"toast_duration" validate:"gt=0"`
	Icons         string        `koanf:"icons"          validate:"oneof=nerd unicode none"`
}

type LogConfig struct {
	Level  string `koanf:"level"  validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=pretty json"`
	File   string `koanf:"file"` // empty means the XDG state directory
}

type NotificationsConfig struct {
	Enabled bool `koanf:"enabled"`
}

type MPRISConfig struct {
	Enabled bool `koanf:"enabled"`
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:     catalog.DefaultBaseURL,
			TotalTracks: catalog.DefaultTotalTracks,
			GroupSize:   catalog.DefaultGroupSize,
		},
		Playback: PlaybackConfig{
			Speed:        1.0,
			Repeat:       "none",
			RepeatEach:   playback.MinRepeatEach,
			MaxErrorSkip: playback.DefaultMaxErrorSkip,
		},
		Quiz: QuizConfig{
			Time:               quiz.DefaultTime,
			Delay:              quiz.DefaultDelay,
			AutoAdvanceDelay:   quiz.DefaultAutoAdvanceDelay,
			RevealAdvanceDelay: quiz.DefaultRevealAdvanceDelay,
		},
		History: HistoryConfig{
			MaxRecent:   state.DefaultMaxRecent,
			RestoreLast: true,
		},
		Storage: StorageConfig{Driver: string(store.DriverSQLite)},
		HTTP: HTTPConfig{
			Timeout:    30 * time.Second,
			CacheItems: 32,
			CacheTTL:   time.Hour,
		},
		UI:            UIConfig{ToastDuration: 4 * time.Second, Icons: "unicode"},
		Log:           LogConfig{Level: "info", Format: "pretty"},
		Notifications: NotificationsConfig{Enabled: true},
		MPRIS:         MPRISConfig{Enabled: true},
	}
}

// Load merges the config files over the defaults, lowest priority first:
// ~/.config/shloka/config.toml, ./config.toml, $SHLOKA_CONFIG, explicit.
// Only an explicit path must exist. A .env file in the working directory is
// read first so it can set the environment variables.
func Load(explicit string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths(os.Getenv(EnvConfig)) {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}
	if explicit != "" {
		path := expandPath(explicit)
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if url := os.Getenv(EnvBaseURL); url != "" {
		cfg.Catalog.BaseURL = url
	}
	cfg.Storage.Path = expandPath(cfg.Storage.Path)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getConfigPaths(fromEnv string) []string {
	paths := []string{}

	// 1. ~/.config/shloka/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "shloka", "config.toml"))
	}

	// 2. ./config.toml (pwd)
	paths = append(paths, "config.toml")

	// 3. $SHLOKA_CONFIG
	if fromEnv != "" {
		paths = append(paths, expandPath(fromEnv))
	}

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// NewCatalog builds the catalog described by the config.
func (c *Config) NewCatalog() (*catalog.Catalog, error) {
	return catalog.New(c.Catalog.BaseURL, c.Catalog.TotalTracks, c.Catalog.GroupSize)
}

// PlaybackSettings returns the initial regular-mode settings.
func (c *Config) PlaybackSettings() (playback.Settings, error) {
	mode, err := playback.ParseRepeatMode(c.Playback.Repeat)
	if err != nil {
		return playback.Settings{}, err
	}
	s := playback.Settings{
		Speed:      c.Playback.Speed,
		Repeat:     mode,
		RepeatEach: c.Playback.RepeatEach,
		Shuffle:    c.Playback.Shuffle,
	}
	return s, s.Validate()
}

// Session returns the core configuration.
func (c *Config) Session() (session.Config, error) {
	pb, err := c.PlaybackSettings()
	if err != nil {
		return session.Config{}, err
	}
	return session.Config{
		Playback: pb,
		Quiz: quiz.Settings{
			Time:     c.Quiz.Time,
			Delay:    c.Quiz.Delay,
			AutoPlay: c.Quiz.AutoPlay,
		},
		MaxErrors:            c.Playback.MaxErrorSkip,
		AutoAdvanceDelay:     c.Quiz.AutoAdvanceDelay,
		RevealAdvanceDelay:   c.Quiz.RevealAdvanceDelay,
		RestoreLastSelection: c.History.RestoreLast,
	}, nil
}

// StorageDriver returns the configured engine.
func (c *Config) StorageDriver() store.Driver {
	return store.Driver(c.Storage.Driver)
}
