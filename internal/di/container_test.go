package di

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/shloka/internal/config"
	"github.com/llehouerou/shloka/internal/di/providers"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[catalog]
total_tracks = 50

[storage]
driver = "sqlite"
path = "` + filepath.Join(dir, "shloka.db") + `"

[log]
file = "` + filepath.Join(dir, "shloka.log") + `"
format = "json"

[notifications]
enabled = false

[mpris]
enabled = false
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestContainer_WiresCore(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvBaseURL, "")

	injector := NewContainer(providers.Params{ConfigPath: writeConfig(t)})

	core, err := do.Invoke[*providers.CoreHandle](injector)
	require.NoError(t, err)
	assert.Equal(t, 50, core.Catalog().Total())

	st, err := do.Invoke[*providers.StateHandle](injector)
	require.NoError(t, err)
	assert.True(t, st.Available())

	_, err = do.Invoke[*providers.DesktopNotifierHandle](injector)
	require.NoError(t, err)
	_, err = do.Invoke[*providers.MPRISHandle](injector)
	require.NoError(t, err)

	injector.Shutdown()
}

func TestContainer_StorageOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvConfig, "")

	injector := NewContainer(providers.Params{ConfigPath: writeConfig(t), Storage: "memory"})
	defer injector.Shutdown()

	cfg, err := do.Invoke[*config.Config](injector)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func TestContainer_InvalidStorageOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvConfig, "")

	injector := NewContainer(providers.Params{ConfigPath: writeConfig(t), Storage: "floppy"})
	defer injector.Shutdown()

	_, err := do.Invoke[*config.Config](injector)
	assert.Error(t, err)
}
