package tui

import (
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"

	"github.com/parleychat/parley/internal/config"
)

// Pin the Ascii profile so rendered output is stable across CI/platforms.
func init() {
	lipgloss.Writer.Profile = colorprofile.Ascii
}

func testConfig() *config.Config {
	return &config.Config{
		PinThreshold:   config.DefaultPinThreshold,
		FocusSettleMs:  config.DefaultFocusSettleMs,
		TickIntervalMs: 1,
		ReplyDelayMs:   0,
		SidebarVisible: true,
	}
}
