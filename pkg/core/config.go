// pkg/core/config.go
package core

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultSyncURL is the repository holding the shared manifest
	DefaultSyncURL = "https://github.com/arc-language/biodeps"
	// DefaultSyncRef is the branch synced by default
	DefaultSyncRef = "main"
	// DefaultSyncFile is the manifest path inside the synced repository
	DefaultSyncFile = "pkg/manifest/default.yaml"
)

// Config holds biodeps configuration
type Config struct {
	Manifest    string        `yaml:"manifest"`
	CachePath   string        `yaml:"cache_path"`
	DefaultEnv  string        `yaml:"default_env"`
	Timeout     time.Duration `yaml:"timeout"`
	Concurrency int           `yaml:"concurrency"`
	Debug       bool          `yaml:"debug"`
	Sync        SyncConfig    `yaml:"sync"`
}

// SyncConfig says where the shared manifest lives
type SyncConfig struct {
	URL  string `yaml:"url"`
	Ref  string `yaml:"ref"`
	File string `yaml:"file"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Manifest:    os.Getenv("BIODEPS_MANIFEST"),
		CachePath:   getDefaultCachePath(),
		Timeout:     30 * time.Minute,
		Concurrency: 4,
		Sync: SyncConfig{
			URL:  DefaultSyncURL,
			Ref:  DefaultSyncRef,
			File: DefaultSyncFile,
		},
	}
}

// DefaultConfigPath is $HOME/.config/biodeps/config.yaml
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "biodeps", "config.yaml"), nil
}

// LoadConfig loads configuration from file. Fields missing from the file
// keep their defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if env := os.Getenv("BIODEPS_MANIFEST"); env != "" {
		cfg.Manifest = env
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}

	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func getDefaultCachePath() string {
	if path := os.Getenv("BIODEPS_CACHE_PATH"); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "biodeps")
	}

	return filepath.Join(home, ".cache", "biodeps")
}
