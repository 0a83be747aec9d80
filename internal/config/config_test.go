package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Run from an empty directory so no project config is picked up.
	tmpDir := t.TempDir()
	origWd, _ := os.Getwd()
	defer func() { _ = os.Chdir(origWd) }()
	require.NoError(t, os.Chdir(tmpDir))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, DefaultPinThreshold, cfg.PinThreshold)
	require.Equal(t, DefaultFocusSettleMs, cfg.FocusSettleMs)
	require.Equal(t, DefaultTickIntervalMs, cfg.TickIntervalMs)
	require.Equal(t, DefaultReplyDelayMs, cfg.ReplyDelayMs)
	require.True(t, cfg.SidebarVisible)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	origWd, _ := os.Getwd()
	defer func() { _ = os.Chdir(origWd) }()
	require.NoError(t, os.Chdir(tmpDir))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("PARLEY_PIN_THRESHOLD", "10")
	t.Setenv("PARLEY_FOCUS_SETTLE_MS", "150")
	t.Setenv("PARLEY_SIDEBAR_VISIBLE", "false")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 10, cfg.PinThreshold)
	require.Equal(t, 150, cfg.FocusSettleMs)
	require.False(t, cfg.SidebarVisible)
}

func TestLoadProjectConfig(t *testing.T) {
	tmpDir := t.TempDir()
	origWd, _ := os.Getwd()
	defer func() { _ = os.Chdir(origWd) }()
	require.NoError(t, os.Chdir(tmpDir))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	yml := "pin_threshold: 7\ntick_interval_ms: 40\n"
	require.NoError(t, os.WriteFile("parley.yml", []byte(yml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 7, cfg.PinThreshold)
	require.Equal(t, 40, cfg.TickIntervalMs)
	// Untouched keys keep their defaults.
	require.Equal(t, DefaultFocusSettleMs, cfg.FocusSettleMs)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"negative pin threshold", func(c *Config) { c.PinThreshold = -1 }, true},
		{"zero pin threshold ok", func(c *Config) { c.PinThreshold = 0 }, false},
		{"negative settle delay", func(c *Config) { c.FocusSettleMs = -5 }, true},
		{"zero tick interval", func(c *Config) { c.TickIntervalMs = 0 }, true},
		{"negative reply delay", func(c *Config) { c.ReplyDelayMs = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				PinThreshold:   DefaultPinThreshold,
				FocusSettleMs:  DefaultFocusSettleMs,
				TickIntervalMs: DefaultTickIntervalMs,
				ReplyDelayMs:   DefaultReplyDelayMs,
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestGlobalPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	require.Equal(t, "/custom/config/parley/parley.yml", GlobalPath())
}

func TestProjectPath(t *testing.T) {
	require.Equal(t, "parley.yml", ProjectPath())
}
