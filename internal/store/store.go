// Package store provides the key-value engines backing persisted state.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "shloka"

var (
	ErrNotFound      = errors.New("key not found")
	ErrClosed        = errors.New("store closed")
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// Store is a flat string-keyed byte store.
type Store interface {
	// Get returns ErrNotFound when the key is absent.
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	// Delete is a no-op for absent keys.
	Delete(key string) error
	Close() error
}

// Driver names a storage engine.
type Driver string

const (
	DriverSQLite Driver = "sqlite"
	DriverBadger Driver = "badger"
	DriverMemory Driver = "memory"
)

// Open opens the engine named by driver. An empty path selects the default
// location under the XDG data directory.
func Open(driver Driver, path string) (Store, error) {
	if driver == DriverMemory {
		return NewMemory(), nil
	}

	if path == "" {
		p, err := DefaultPath(driver)
		if err != nil {
			return nil, err
		}
		path = p
	}

	switch driver {
	case DriverSQLite:
		return OpenSQLite(path)
	case DriverBadger:
		return OpenBadger(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// DefaultPath returns where the driver keeps its data, creating parent
// directories as needed.
func DefaultPath(driver Driver) (string, error) {
	switch driver {
	case DriverSQLite:
		return xdg.DataFile(filepath.Join(appName, appName+".db"))
	case DriverBadger:
		dir := filepath.Join(xdg.DataHome, appName, "badger")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
		return dir, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
