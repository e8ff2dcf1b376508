package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hersh/gopong/internal/config"
)

func restoreLogger(t *testing.T) {
	prev, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})
}

func TestSetupWritesJSONToFile(t *testing.T) {
	restoreLogger(t)
	path := filepath.Join(t.TempDir(), "pong.log")

	closer, err := Setup(config.LogConfig{Level: "INFO", Format: "json", File: path, MaxSizeMB: 1})
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("module", "test").Msg("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "test", entry["module"])
	assert.Equal(t, "info", entry["level"])
}

func TestSetupConsoleFileHasNoColour(t *testing.T) {
	restoreLogger(t)
	path := filepath.Join(t.TempDir(), "pong.log")

	closer, err := Setup(config.LogConfig{Level: "debug", Format: "console", File: path})
	require.NoError(t, err)
	log.Debug().Msg("visible")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible")
	assert.NotContains(t, string(data), "\x1b[")
}

func TestSetupRejectsBadConfig(t *testing.T) {
	restoreLogger(t)

	_, err := Setup(config.LogConfig{Level: "loud"})
	assert.Error(t, err)

	_, err = Setup(config.LogConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}
