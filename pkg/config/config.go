// Package config loads graphite's YAML configuration.
//
// The file lives at ~/.graphite/config.yaml by default. A missing file is
// not an error: every setting has a default. Command-line flags are applied
// on top of the loaded values by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DirName is the per-user graphite directory under the home directory.
	DirName = ".graphite"

	// FileName is the configuration file name inside the graphite directory.
	FileName = "config.yaml"
)

// Storage backends.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Viewer backends.
const (
	ViewerNone       = "none"
	ViewerPlaywright = "playwright"
)

// Config is the complete graphite configuration.
type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	Viewer    ViewerConfig    `yaml:"viewer"`
	UI        UIConfig        `yaml:"ui"`
	Downloads DownloadsConfig `yaml:"downloads"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// StorageConfig selects where browser state is persisted.
type StorageConfig struct {
	// Backend is one of file, sqlite or memory.
	Backend string `yaml:"backend"`

	// Path of the state file or database. Empty means the backend's
	// default file inside the graphite directory.
	Path string `yaml:"path"`
}

// ViewerConfig controls how pages are rendered.
type ViewerConfig struct {
	// Backend is none (offline) or playwright.
	Backend     string        `yaml:"backend"`
	Headless    bool          `yaml:"headless"`
	Timeout     time.Duration `yaml:"timeout"`
	WaitUntil   string        `yaml:"wait_until"`
	MaxPreview  int           `yaml:"max_preview"`
	MaxPages    int           `yaml:"max_pages"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ProxyBypass lists host globs that are loaded directly even when a
	// proxy server is set.
	ProxyBypass []string `yaml:"proxy_bypass,omitempty"`
}

// UIConfig holds terminal UI preferences.
type UIConfig struct {
	ShowHelp bool `yaml:"show_help"`
}

// DownloadsConfig locates downloaded files.
type DownloadsConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig locates log files.
type LoggingConfig struct {
	Dir string `yaml:"dir"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: StorageFile,
		},
		Viewer: ViewerConfig{
			Backend:     ViewerNone,
			Headless:    true,
			Timeout:     30 * time.Second,
			WaitUntil:   "domcontentloaded",
			MaxPreview:  8000,
			MaxPages:    16,
			IdleTimeout: 30 * time.Minute,
		},
		UI: UIConfig{
			ShowHelp: true,
		},
	}
}

// Dir returns the graphite directory, ~/.graphite.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// DefaultPath returns the default configuration file path.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the configuration at path on top of the defaults. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case StorageFile, StorageSQLite, StorageMemory:
	default:
		return fmt.Errorf("invalid storage backend: %s (must be 'file', 'sqlite' or 'memory')", c.Storage.Backend)
	}

	switch c.Viewer.Backend {
	case ViewerNone, ViewerPlaywright:
	default:
		return fmt.Errorf("invalid viewer backend: %s (must be 'none' or 'playwright')", c.Viewer.Backend)
	}

	switch c.Viewer.WaitUntil {
	case "", "load", "domcontentloaded", "networkidle", "commit":
	default:
		return fmt.Errorf("invalid wait_until: %s", c.Viewer.WaitUntil)
	}

	if c.Viewer.Timeout < 0 {
		return fmt.Errorf("viewer timeout cannot be negative")
	}
	if c.Viewer.IdleTimeout < 0 {
		return fmt.Errorf("viewer idle_timeout cannot be negative")
	}
	if c.Viewer.MaxPreview < 0 {
		return fmt.Errorf("max_preview cannot be negative")
	}
	if c.Viewer.MaxPages < 0 {
		return fmt.Errorf("max_pages cannot be negative")
	}

	return nil
}

// StatePath returns the storage path, falling back to the backend's default
// file in the graphite directory. The memory backend has no path.
func (c *Config) StatePath() (string, error) {
	if c.Storage.Path != "" || c.Storage.Backend == StorageMemory {
		return c.Storage.Path, nil
	}

	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if c.Storage.Backend == StorageSQLite {
		return filepath.Join(dir, "state.db"), nil
	}
	return filepath.Join(dir, "state.json"), nil
}

// DownloadsDir returns the downloads directory, ~/Downloads by default.
func (c *Config) DownloadsDir() (string, error) {
	if c.Downloads.Dir != "" {
		return c.Downloads.Dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, "Downloads"), nil
}
