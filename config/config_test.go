package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reportctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "api:\n  base_url: https://reports.example.com/\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://reports.example.com", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, int64(64<<20), cfg.API.MaxBodyBytes)
	assert.Equal(t, 30*time.Second, cfg.Sync.PollInterval)
	assert.Equal(t, 5*time.Second, cfg.Sync.ReconcileDelay)
	assert.Equal(t, TokenStoreFile, cfg.Session.Store)
	assert.NotEmpty(t, cfg.Session.TokenFile)
	assert.False(t, cfg.MinIO.Enabled)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "sync:\n  poll_interval: 10s\n")
	t.Setenv("REPORTCTL_SYNC_POLL_INTERVAL", "2s")
	t.Setenv("REPORTCTL_SESSION_STORE", "memory")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Sync.PollInterval)
	assert.Equal(t, TokenStoreMemory, cfg.Session.Store)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := map[string]string{
		"relative base url":  "api:\n  base_url: /api\n",
		"unknown store":      "session:\n  store: sqlite\n",
		"zero poll":          "sync:\n  poll_interval: 0s\n",
		"minio without keys": "minio:\n  enabled: true\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
