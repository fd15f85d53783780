package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	// DirName is the per-user directory holding config and snapshot
	DirName = ".storyarch"

	// FileName is the config file inside DirName
	FileName = "config.yaml"

	// SnapshotFileName is the default snapshot file inside DirName
	SnapshotFileName = "projects.snapshot.json"

	envPrefix = "STORYARCH_"
)

// Config represents the application configuration
type Config struct {
	// Location of the project snapshot
	SnapshotPath string `koanf:"snapshot_path"`

	// Acting user when --user is not given
	User string `koanf:"user"`

	Log LogConfig `koanf:"log"`
}

// LogConfig controls the logger
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the configuration used when no file exists
func Default(dir string) *Config {
	return &Config{
		SnapshotPath: filepath.Join(dir, SnapshotFileName),
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// GetGlobalConfigDir returns ~/.storyarch
func GetGlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// GetGlobalConfigPath returns ~/.storyarch/config.yaml
func GetGlobalConfigPath() (string, error) {
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load loads the configuration from the given file path. Values from the file
// are overridden by STORYARCH_* environment variables, e.g.
//
//	STORYARCH_SNAPSHOT_PATH -> snapshot_path
//	STORYARCH_LOG_LEVEL     -> log.level
//
// A missing file is not an error; defaults are used instead.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := Default(filepath.Dir(path))
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// envKey maps STORYARCH_LOG_LEVEL to log.level and STORYARCH_SNAPSHOT_PATH
// to snapshot_path
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if rest, ok := strings.CutPrefix(key, "log_"); ok {
		return "log." + rest
	}
	return key
}

// Save saves the configuration to the given file path
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	k := koanf.New(".")
	values := map[string]interface{}{
		"snapshot_path": c.SnapshotPath,
		"user":          c.User,
		"log.level":     c.Log.Level,
		"log.format":    c.Log.Format,
	}
	for key, value := range values {
		if err := k.Set(key, value); err != nil {
			return err
		}
	}

	data, err := k.Marshal(yaml.Parser())
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks the configuration for values the application cannot use
func (c *Config) Validate() error {
	if c.SnapshotPath == "" {
		return fmt.Errorf("snapshot_path cannot be empty")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Log.Level)
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %q", c.Log.Format)
	}

	return nil
}
