package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := `
storage:
  backend: sqlite
  path: /tmp/graphite.db
viewer:
  backend: playwright
  headless: false
  timeout: 10s
  proxy_bypass:
    - localhost
    - "*.internal"
ui:
  show_help: false
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, StorageSQLite, cfg.Storage.Backend)
		assert.Equal(t, "/tmp/graphite.db", cfg.Storage.Path)
		assert.Equal(t, ViewerPlaywright, cfg.Viewer.Backend)
		assert.False(t, cfg.Viewer.Headless)
		assert.Equal(t, 10*time.Second, cfg.Viewer.Timeout)
		assert.Equal(t, []string{"localhost", "*.internal"}, cfg.Viewer.ProxyBypass)
		assert.False(t, cfg.UI.ShowHelp)

		// Unset keys keep their defaults.
		assert.Equal(t, 8000, cfg.Viewer.MaxPreview)
		assert.Equal(t, "domcontentloaded", cfg.Viewer.WaitUntil)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("storage: [unclosed"), 0600))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestConfig_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Storage.Backend = StorageMemory
	cfg.Viewer.ProxyBypass = []string{"**.corp"}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"sqlite storage", func(c *Config) { c.Storage.Backend = StorageSQLite }, false},
		{"unknown storage", func(c *Config) { c.Storage.Backend = "redis" }, true},
		{"unknown viewer", func(c *Config) { c.Viewer.Backend = "webkit" }, true},
		{"unknown wait_until", func(c *Config) { c.Viewer.WaitUntil = "never" }, true},
		{"negative timeout", func(c *Config) { c.Viewer.Timeout = -time.Second }, true},
		{"negative idle timeout", func(c *Config) { c.Viewer.IdleTimeout = -time.Second }, true},
		{"negative preview", func(c *Config) { c.Viewer.MaxPreview = -1 }, true},
		{"negative max pages", func(c *Config) { c.Viewer.MaxPages = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_StatePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := DefaultConfig()
	path, err := cfg.StatePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, DirName, "state.json"), path)

	cfg.Storage.Backend = StorageSQLite
	path, err = cfg.StatePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, DirName, "state.db"), path)

	cfg.Storage.Backend = StorageMemory
	path, err = cfg.StatePath()
	require.NoError(t, err)
	assert.Empty(t, path)

	cfg.Storage.Backend = StorageFile
	cfg.Storage.Path = "/custom/state.json"
	path, err = cfg.StatePath()
	require.NoError(t, err)
	assert.Equal(t, "/custom/state.json", path)
}

func TestDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".graphite", "config.yaml"), path)

	cfg := DefaultConfig()
	dl, err := cfg.DownloadsDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Downloads"), dl)
}
