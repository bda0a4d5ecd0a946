package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_DisabledByDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	log, closer, err := Setup(Options{Dir: dir})
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, zerolog.Disabled, log.GetLevel())
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "disabled logging must not touch the filesystem")
}

func TestSetup_EnabledWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	log, closer, err := Setup(Options{Enabled: true, Dir: dir, Level: "debug"})
	require.NoError(t, err)

	log.Debug().Str("level", "shinjuku").Msg("level started")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"level started"`)
	assert.Contains(t, string(data), `"level":"debug"`)
}

func TestSetup_LevelFilters(t *testing.T) {
	dir := t.TempDir()

	log, closer, err := Setup(Options{Enabled: true, Dir: dir, Level: "warn"})
	require.NoError(t, err)
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestSetup_Console(t *testing.T) {
	var buf bytes.Buffer
	log, closer, err := Setup(Options{Enabled: true, Dir: t.TempDir(), Console: &buf})
	require.NoError(t, err)
	defer closer.Close()

	log.Info().Msg("to both")
	assert.Contains(t, buf.String(), "to both")
}

func TestSetup_Rotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, make([]byte, MaxSize+1), 0644))

	_, closer, err := Setup(Options{Enabled: true, Dir: dir})
	require.NoError(t, err)
	defer closer.Close()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	rotated := 0
	for _, e := range entries {
		if e.Name() != FileName && filepath.Ext(e.Name()) == ".log" {
			rotated++
		}
	}
	assert.Equal(t, 1, rotated)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(MaxSize))
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, l)

	l, err = ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, l)

	_, err = ParseLevel("loud")
	assert.Error(t, err)

	_, _, err = Setup(Options{Enabled: true, Dir: t.TempDir(), Level: "loud"})
	assert.Error(t, err)
}
