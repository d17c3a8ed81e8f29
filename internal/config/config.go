// Package config loads the user's csvview settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is looked up in the user's home directory.
const FileName = ".csvview.yaml"

type Config struct {
	Colors   ColorConfig         `yaml:"colors,omitempty"`
	Hotkeys  map[string][]string `yaml:"hotkeys,omitempty"`
	Logging  LoggingConfig       `yaml:"logging,omitempty"`
	StartDir string              `yaml:"start_dir,omitempty"`
}

// ColorConfig overrides the grid color of each column type. Values are
// anything lipgloss accepts: "#87CEEB", "212".
type ColorConfig struct {
	String string `yaml:"string,omitempty"`
	Int    string `yaml:"int,omitempty"`
	Float  string `yaml:"float,omitempty"`
	Bool   string `yaml:"bool,omitempty"`
	Empty  string `yaml:"empty,omitempty"`
}

type LoggingConfig struct {
	// Level is one of debug, info, warn, error (default: info)
	Level string `yaml:"level,omitempty"`

	// Format is text or json (default: text)
	Format string `yaml:"format,omitempty"`

	// File receives log output. Empty discards logs, the terminal belongs to
	// the UI.
	File string `yaml:"file,omitempty"`
}

// DefaultPath returns ~/.csvview.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, FileName), nil
}

// Load reads the config at path. A missing file yields an empty config so
// every setting falls back to its default. JSON files parse too.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	cfg.StartDir = ExpandHome(cfg.StartDir)
	cfg.Logging.File = ExpandHome(cfg.Logging.File)
	return &cfg, nil
}

// Validate checks enumerated settings. Unknown hotkey actions are left to the
// UI, which reports and ignores them.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q: want debug, info, warn or error", c.Logging.Level))
	}

	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q: want text or json", c.Logging.Format))
	}

	for action, keys := range c.Hotkeys {
		for _, k := range keys {
			if strings.TrimSpace(k) == "" {
				errs = append(errs, fmt.Errorf("hotkeys.%s: empty key", action))
			}
		}
	}

	return errors.Join(errs...)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
