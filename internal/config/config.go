// Package config loads wip configuration from ~/.config/wip/config.toml.
//
// Every value has a working default; a missing config file is not an
// error. Paths may use ~ which is expanded to the user's home directory.
// The effective root directory for repository discovery is resolved by
// the CLI layer: flag > WIP_ROOT env > config > current directory. The
// resolved root is always passed explicitly into the engine, never read
// from ambient state there.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the wip configuration.
type Config struct {
	// Root is the directory scanned for bare repositories.
	Root string `toml:"root"`

	// PrimaryBranch overrides primary-branch detection for all repos.
	// Empty means detect per repo (origin/HEAD, then main, then master).
	PrimaryBranch string `toml:"primary_branch"`

	// ActiveDays is the recency window for the --active preset.
	ActiveDays int `toml:"active_days"`

	// StaleDays is the age threshold for the --stale preset.
	StaleDays int `toml:"stale_days"`

	// Concurrency bounds parallel per-worktree status computation.
	Concurrency int `toml:"concurrency"`

	// NoEmoji disables emoji in status output.
	NoEmoji bool `toml:"no_emoji"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		ActiveDays:  7,
		StaleDays:   30,
		Concurrency: 8,
	}
}

// ValidatePath checks that the path is absolute or starts with ~.
// Returns error if path is relative (like "." or "..").
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the path to the config file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wip", "config.toml"), nil
}

// Load reads config from ~/.config/wip/config.toml.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from an explicit path. Used by tests.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return Default(), fmt.Errorf("invalid config %s: %w", path, err)
	}

	if cfg.Root, err = ExpandPath(cfg.Root); err != nil {
		return Default(), err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if err := ValidatePath(c.Root, "root"); err != nil {
		return err
	}
	if c.ActiveDays < 0 {
		return fmt.Errorf("active_days must be >= 0, got %d", c.ActiveDays)
	}
	if c.StaleDays < 0 {
		return fmt.Errorf("stale_days must be >= 0, got %d", c.StaleDays)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must be >= 0, got %d", c.Concurrency)
	}
	if c.Concurrency == 0 {
		c.Concurrency = Default().Concurrency
	}
	if c.ActiveDays == 0 {
		c.ActiveDays = Default().ActiveDays
	}
	if c.StaleDays == 0 {
		c.StaleDays = Default().StaleDays
	}
	return nil
}
