// Package config loads the console settings from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Front-end modes.
const (
	ModeTUI   = "tui"
	ModePlain = "plain"
)

// Config holds all talon configuration.
type Config struct {
	// Prompt shown before every transcript command.
	Prompt     string `yaml:"prompt"`
	// TimeLayout is a Go time layout for transcript timestamps.
	TimeLayout string `yaml:"time_layout"`
	// Mode selects the front end: tui or plain.
	Mode       string `yaml:"mode"`
	// PluginsDir holds Lua command plugins. Empty disables plugins.
	PluginsDir string `yaml:"plugins_dir"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the diagnostic log.
type LoggingConfig struct {
	// File receives JSON log lines. Empty disables logging.
	File  string `yaml:"file"`
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Prompt:     "talon@system:~$",
		TimeLayout: "3:04:05 PM",
		Mode:       ModeTUI,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns ~/.talon/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".talon", "config.yaml")
	}
	return filepath.Join(home, ".talon", "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeTUI, ModePlain:
	default:
		return fmt.Errorf("invalid mode %q (want %s or %s)", c.Mode, ModeTUI, ModePlain)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TALON_PROMPT"); v != "" {
		c.Prompt = v
	}
	if v := os.Getenv("TALON_MODE"); v != "" {
		c.Mode = v
	}
	if v := os.Getenv("TALON_PLUGINS"); v != "" {
		c.PluginsDir = v
	}
	if v := os.Getenv("TALON_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("TALON_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}
