package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arrognz/babycheck/internal/config"
)

func resetFlags() {
	configPath, storeType, filePath, redisURL, redisKey, timezone = "", "", "", "", "", ""
	debug = false
	outputFormat = "table"
}

func TestLoadConfigFlagsWin(t *testing.T) {
	defer resetFlags()
	resetFlags()

	dir := t.TempDir()
	configPath = filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("timezone: UTC\nstore:\n  type: redis\n"), 0o644))

	storeType = config.StoreFile
	filePath = filepath.Join(dir, "events.jsonl")
	timezone = "Europe/Paris"

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.StoreFile, cfg.Store.Type)
	assert.Equal(t, filePath, cfg.Store.FilePath)
	assert.Equal(t, "Europe/Paris", cfg.Timezone)
}

func TestLoadConfigRejectsBadStore(t *testing.T) {
	defer resetFlags()
	resetFlags()

	storeType = "carrier-pigeon"
	_, err := loadConfig()
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got := expandPath("~/.babycheck/events.jsonl")
	assert.True(t, strings.HasPrefix(got, home), "got %q", got)
	assert.True(t, filepath.IsAbs(expandPath("relative/path")))
}

func TestRootCommandWiring(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[strings.Fields(c.Use)[0]] = true
	}
	for _, want := range []string{"stats", "state", "day", "add", "serve", "watch"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}
