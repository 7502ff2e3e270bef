package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// engines returns one fresh instance of every engine.
func engines(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	bdg, err := OpenBadgerInMemory()
	require.NoError(t, err)

	stores := map[string]Store{
		"sqlite": sqlite,
		"badger": bdg,
		"memory": NewMemory(),
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestStore_GetMissing(t *testing.T) {
	for name, s := range engines(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get("nope")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_SetGetOverwrite(t *testing.T) {
	for name, s := range engines(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("k", []byte("one")))
			got, err := s.Get("k")
			require.NoError(t, err)
			assert.Equal(t, "one", string(got))

			require.NoError(t, s.Set("k", []byte("two")))
			got, err = s.Get("k")
			require.NoError(t, err)
			assert.Equal(t, "two", string(got))
		})
	}
}

func TestStore_Delete(t *testing.T) {
	for name, s := range engines(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("k", []byte("v")))
			require.NoError(t, s.Delete("k"))
			_, err := s.Get("k")
			assert.ErrorIs(t, err, ErrNotFound)

			assert.NoError(t, s.Delete("never-set"))
		})
	}
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("lastSelection", []byte("[1,2,3]")))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get("lastSelection")
	require.NoError(t, err)
	assert.Equal(t, "[1,2,3]", string(got))
}

func TestBadger_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	b, err := OpenBadger(dir)
	require.NoError(t, err)
	require.NoError(t, b.Set("k", []byte("v")))
	require.NoError(t, b.Close())

	b, err = OpenBadger(dir)
	require.NoError(t, err)
	defer b.Close()

	got, err := b.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestMemory_Closed(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Close())
	if err := m.Set("k", nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Set after Close = %v, want ErrClosed", err)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("floppy", "/tmp/x")
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestOpen_Memory(t *testing.T) {
	s, err := Open(DriverMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)
}
