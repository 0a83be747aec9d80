// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for parley.
//
// PinThreshold and FocusSettleMs are the tuning constants for scroll
// anchoring: how close to the bottom (in lines) the view must be to count as
// pinned, and how long after the input gains focus before the forced
// reconcile pass runs. Both are environment-dependent, so they are
// configuration rather than constants.
type Config struct {
	PinThreshold   int    `mapstructure:"pin_threshold" yaml:"pin_threshold"`
	FocusSettleMs  int    `mapstructure:"focus_settle_ms" yaml:"focus_settle_ms"`
	TickIntervalMs int    `mapstructure:"tick_interval_ms" yaml:"tick_interval_ms"`
	ReplyDelayMs   int    `mapstructure:"reply_delay_ms" yaml:"reply_delay_ms"`
	SidebarVisible bool   `mapstructure:"sidebar_visible" yaml:"sidebar_visible"`
	LogLevel       string `mapstructure:"log_level" yaml:"log_level"`
	LogFile        string `mapstructure:"log_file" yaml:"log_file"`
}

// Defaults for the anchoring heuristics. Tuned for terminal rendering, where
// a layout unit is one line.
const (
	DefaultPinThreshold   = 4
	DefaultFocusSettleMs  = 300
	DefaultTickIntervalMs = 25
	DefaultReplyDelayMs   = 600
)

// Load loads configuration with full precedence:
// ENV vars > project config > XDG global config > defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("parley")

	v.SetDefault("pin_threshold", DefaultPinThreshold)
	v.SetDefault("focus_settle_ms", DefaultFocusSettleMs)
	v.SetDefault("tick_interval_ms", DefaultTickIntervalMs)
	v.SetDefault("reply_delay_ms", DefaultReplyDelayMs)
	v.SetDefault("sidebar_visible", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")

	v.SetEnvPrefix("PARLEY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit ENV bindings for better bool/int parsing.
	for key, env := range map[string]string{
		"pin_threshold":    "PARLEY_PIN_THRESHOLD",
		"focus_settle_ms":  "PARLEY_FOCUS_SETTLE_MS",
		"tick_interval_ms": "PARLEY_TICK_INTERVAL_MS",
		"reply_delay_ms":   "PARLEY_REPLY_DELAY_MS",
		"sidebar_visible":  "PARLEY_SIDEBAR_VISIBLE",
		"log_level":        "PARLEY_LOG_LEVEL",
		"log_file":         "PARLEY_LOG_FILE",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	// Global config first, then project config merged on top.
	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the tuning constants are usable.
func (c *Config) Validate() error {
	if c.PinThreshold < 0 {
		return fmt.Errorf("pin_threshold must be >= 0, got %d", c.PinThreshold)
	}
	if c.FocusSettleMs < 0 {
		return fmt.Errorf("focus_settle_ms must be >= 0, got %d", c.FocusSettleMs)
	}
	if c.TickIntervalMs <= 0 {
		return fmt.Errorf("tick_interval_ms must be > 0, got %d", c.TickIntervalMs)
	}
	if c.ReplyDelayMs < 0 {
		return fmt.Errorf("reply_delay_ms must be >= 0, got %d", c.ReplyDelayMs)
	}
	return nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path:
// $XDG_CONFIG_HOME/parley/parley.yml or ~/.config/parley/parley.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "parley", "parley.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "parley", "parley.yml")
}

// ProjectPath returns the project-local config path, ./parley.yml.
func ProjectPath() string {
	return "parley.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(ProjectPath(), data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
