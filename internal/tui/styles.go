package tui

import (
	"charm.land/lipgloss/v2"
)

// Catppuccin Mocha palette. Backgrounds run darkest (crust) to lightest
// (surface), text runs dimmest (subtext) to brightest.
var (
	colorBase     = lipgloss.Color("#1e1e2e") // Main application background
	colorMantle   = lipgloss.Color("#181825") // Header/status backgrounds
	colorCrust    = lipgloss.Color("#11111b") // Darkest shade
	colorSurface0 = lipgloss.Color("#313244") // Code block background
	colorSurface2 = lipgloss.Color("#585b70") // Default borders
	colorOverlay0 = lipgloss.Color("#6c7086") // Muted elements

	colorSubtext0   = lipgloss.Color("#a6adc8") // Dim text
	colorText       = lipgloss.Color("#cdd6f4") // Main text
	colorTextBright = lipgloss.Color("#f5e0dc") // Emphasized text

	colorPrimary   = lipgloss.Color("#cba6f7") // Mauve (brand, focused)
	colorSecondary = lipgloss.Color("#89b4fa") // Blue (interactive)
	colorWarning   = lipgloss.Color("#f9e2af") // Yellow (streaming)

	colorMuted   = colorOverlay0
	colorTextDim = colorSubtext0
)

var (
	styleHeader = lipgloss.NewStyle().
			Foreground(colorTextBright).
			Background(colorMantle).
			Bold(true).
			Padding(0, 1)

	styleHeaderTitle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorMantle).
			Padding(0, 1)

	styleStatusKey = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	styleStatusStreaming = lipgloss.NewStyle().
				Foreground(colorWarning).
				Bold(true)

	styleDim = lipgloss.NewStyle().
			Foreground(colorTextDim)

	// Message blocks: left border marks the author.
	styleUserBorder = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(colorSecondary).
			PaddingLeft(1)

	styleAgentBorder = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder(), false, false, false, true).
				BorderForeground(colorPrimary).
				PaddingLeft(1)

	styleUserLabel = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	styleAgentLabel = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleCodeContent = lipgloss.NewStyle().
				Background(colorSurface0)

	stylePanelTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	stylePanelTitleFocused = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true)

	stylePanelRule = lipgloss.NewStyle().
			Foreground(colorSurface2)

	stylePanelRuleFocused = lipgloss.NewStyle().
				Foreground(colorSecondary)

	styleScrollIndicator = lipgloss.NewStyle().
				Foreground(colorTextDim).
				Background(colorSurface0)

	styleSidebarItem = lipgloss.NewStyle().
				Foreground(colorText).
				PaddingLeft(1)

	styleSidebarSlug = lipgloss.NewStyle().
				Foreground(colorMuted)

	styleEmptyState = lipgloss.NewStyle().
			Foreground(colorTextDim).
			Italic(true)
)
