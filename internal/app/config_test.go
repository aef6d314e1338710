package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORTAL_API_URL", "https://portal.example.test/")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://portal.example.test/", cfg.APIBaseURL)
	assert.Equal(t, 20*time.Second, cfg.APITimeout)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, "en", cfg.DefaultLanguage)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigRequiresBaseURL(t *testing.T) {
	t.Setenv("PORTAL_API_URL", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("PORTAL_API_URL", "https://portal.example.test/")
	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage driver")
}

func TestLoadEnvFilesKeepsExistingValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORTAL_API_URL=https://from-file.test/\nWATCH_RATE_LIMIT=7\n"), 0o600))
	t.Setenv("PORTAL_API_URL", "https://from-env.test/")
	t.Cleanup(func() { _ = os.Unsetenv("WATCH_RATE_LIMIT") })

	require.NoError(t, LoadEnvFiles(filepath.Join(dir, "missing.env"), path))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://from-env.test/", cfg.APIBaseURL)
	assert.Equal(t, 7, cfg.WatchRateLimit)
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&Config{LogFormat: "json", AppEnv: "production"}, &buf)
	logger.Debug("hidden")
	logger.Info("visible", "slice", "profile")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, out, `"slice":"profile"`)
}
