package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/sortfiles/pkg/sortfiles"
)

// Config holds every setting of a sortfiles run.
type Config struct {
	Output     string `toml:"output"`
	Workers    int    `toml:"workers"`
	LogLevel   string `toml:"log_level"`
	Verify     bool   `toml:"verify"`
	DryRun     bool   `toml:"dry_run"`
	Strict     bool   `toml:"strict"`
	Summary    bool   `toml:"summary"`
	LockOutput bool   `toml:"lock_output"`
	LockDir    string `toml:"lock_dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Output:     defaultOutput,
		Workers:    defaultWorkers,
		LogLevel:   defaultLogLevel,
		LockOutput: defaultLockOutput,
	}
}

// Load locates, parses, and validates a configuration file. An empty path
// falls back to DefaultFileName in the working directory, which may be
// absent and then yields the defaults; an explicit path must exist. It
// returns the config, the resolved path and whether that file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file).DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// Options converts the configuration into organizer options.
func (c *Config) Options() sortfiles.Options {
	return sortfiles.Options{
		Workers:    c.Workers,
		Verify:     c.Verify,
		DryRun:     c.DryRun,
		LockOutput: c.LockOutput,
		LockDir:    c.LockDir,
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	explicit := path != ""
	if !explicit {
		abs, err := filepath.Abs(DefaultFileName)
		if err != nil {
			return "", false, err
		}
		path = abs
	} else {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		path = expanded
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return path, false, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, fmt.Errorf("config file %s: %w", path, err)
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", path)
	}
	return path, true, nil
}

func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand %q: %w", path, err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}
