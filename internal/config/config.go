// Package config handles loading and saving user configuration for marksort.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/f3rmion/marksort/internal/marker"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file inside the config directory.
const FileName = "config.yaml"

// Config holds all user configuration for marksort.
type Config struct {
	StartDir   string    `yaml:"start_dir"`   // File picker start directory
	Extensions []string  `yaml:"extensions"`  // File picker filter, e.g. [".txt"]
	ShowHidden bool      `yaml:"show_hidden"` // List dotfiles in the picker
	Collation  string    `yaml:"collation"`   // "codepoint" or "locale"
	Locale     string    `yaml:"locale"`      // BCP-47 tag for locale collation
	Log        LogConfig `yaml:"log"`
}

// LogConfig holds settings for the rotating log file.
type LogConfig struct {
	File       string `yaml:"file"`  // Empty means <config dir>/logs/marksort.log
	Level      string `yaml:"level"` // debug, info, warn, error
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Extensions: []string{".txt"},
		Collation:  marker.CollationCodePoint,
		Locale:     "en",
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
	}
}

// Load reads the configuration from a YAML file. A missing file yields the
// defaults; keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadDir loads the configuration file from a config directory.
func LoadDir(dir string) (*Config, error) {
	return Load(filepath.Join(dir, FileName))
}

// Save writes the configuration to a YAML file.
func Save(path string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration can be used.
func (c *Config) Validate() error {
	if len(c.Extensions) == 0 {
		return errors.New("extensions must not be empty")
	}
	for _, ext := range c.Extensions {
		if strings.TrimSpace(ext) == "" {
			return errors.New("extensions must not contain empty entries")
		}
	}
	if _, err := c.ParseCollation(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

// ParseCollation returns the sort order selected by the configuration.
func (c *Config) ParseCollation() (marker.Collation, error) {
	return marker.ParseCollation(c.Collation, c.Locale)
}

// PickerDir returns the directory the file picker opens in.
func (c *Config) PickerDir() string {
	if c.StartDir != "" {
		return c.StartDir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	home, _ := os.UserHomeDir()
	if home == "" {
		return "/"
	}
	return home
}

// LogFile returns the log file path, defaulting into the config directory.
func (c *Config) LogFile(configDir string) string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(configDir, "logs", "marksort.log")
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "marksort"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
