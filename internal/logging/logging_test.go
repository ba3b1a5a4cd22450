package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"boulder-smash/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONWritesRunID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	log, err := New(config.LoggingConfig{Level: "debug", Format: "json", File: path})
	require.NoError(t, err)

	log.Debug("hello")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
	assert.Equal(t, "hello", entry["msg"])
	run, ok := entry["run"].(string)
	require.True(t, ok)
	_, err = uuid.Parse(run)
	assert.NoError(t, err)
}

func TestNewConsoleRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	log, err := New(config.LoggingConfig{Level: "warn", Format: "console", File: path})
	require.NoError(t, err)

	log.Info("quiet")
	log.Warn("loud")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quiet")
	assert.Contains(t, string(data), "loud")
	assert.Contains(t, string(data), "WARN")
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	log, err := New(config.LoggingConfig{Level: "chatty", File: path})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(-1))
	assert.True(t, log.Core().Enabled(0))
}
