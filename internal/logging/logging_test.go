package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, Options{Level: "debug", Format: FormatJSON})
	require.NoError(t, err)

	lg := Component(l, "quiz")
	lg.Debug().Int("track", 7).Msg("question")
	line := buf.String()
	assert.Equal(t, 1, strings.Count(line, "\n"))
	assert.Contains(t, line, `"component":"quiz"`)
	assert.Contains(t, line, `"track":7`)
}

func TestNew_PrettyIndentsLines(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, Options{Format: FormatPretty})
	require.NoError(t, err)

	l.Info().Str("k", "v").Msg("hello")
	assert.Contains(t, buf.String(), "\n  \"k\": \"v\"")
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, Options{Level: "warn", Format: FormatJSON})
	require.NoError(t, err)

	l.Info().Msg("dropped")
	assert.Empty(t, buf.String())
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, Options{Level: "loud"})
	assert.Error(t, err)
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shloka.log")
	l, closeFn, err := Open(Options{File: path, Format: FormatJSON})
	require.NoError(t, err)

	l.Info().Msg("started")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "started")
}
