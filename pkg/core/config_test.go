package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("missing file gives defaults", func(t *testing.T) {
		t.Setenv("BIODEPS_MANIFEST", "")
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.Concurrency)
		assert.Equal(t, DefaultSyncURL, cfg.Sync.URL)
		assert.Equal(t, 30*time.Minute, cfg.Timeout)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		t.Setenv("BIODEPS_MANIFEST", "")
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("manifest: /srv/deps.yaml\ndefault_env: ont\ntimeout: 5m\nconcurrency: 0\n"), 0644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "/srv/deps.yaml", cfg.Manifest)
		assert.Equal(t, "ont", cfg.DefaultEnv)
		assert.Equal(t, 5*time.Minute, cfg.Timeout)
		assert.Equal(t, 1, cfg.Concurrency)
		assert.Equal(t, DefaultSyncRef, cfg.Sync.Ref)
	})

	t.Run("env overrides manifest", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("manifest: /srv/deps.yaml\n"), 0644))
		t.Setenv("BIODEPS_MANIFEST", "/tmp/other.toml")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "/tmp/other.toml", cfg.Manifest)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("timeout: [\n"), 0644))
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "parsing config")
	})
}

func TestSaveConfigRoundTrip(t *testing.T) {
	t.Setenv("BIODEPS_MANIFEST", "")
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.DefaultEnv = "varcal"
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
