package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
)

// StatusBar is the one-row bar at the bottom: key hints on the left, a
// streaming indicator on the right while a reply is in flight.
type StatusBar struct {
	streaming bool
	compact   bool
	width     int
}

// Compile-time interface checks
var _ Drawable = (*StatusBar)(nil)
var _ Sizable = (*StatusBar)(nil)

// NewStatusBar creates the status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetStreaming toggles the streaming indicator.
func (s *StatusBar) SetStreaming(streaming bool) {
	s.streaming = streaming
}

// SetCompact switches to the shortened hint set for narrow terminals.
func (s *StatusBar) SetCompact(compact bool) {
	s.compact = compact
}

// SetSize updates the status bar dimensions.
func (s *StatusBar) SetSize(width, _ int) {
	s.width = width
}

// Draw renders the status bar.
func (s *StatusBar) Draw(scr uv.Screen, area uv.Rectangle) *tea.Cursor {
	hints := []string{
		styleStatusKey.Render("enter") + " send",
		styleStatusKey.Render("alt+enter") + " newline",
		styleStatusKey.Render("ctrl+b") + " history",
		styleStatusKey.Render("esc") + " quit",
	}
	if s.compact {
		hints = hints[:2]
	}

	content := strings.Join(hints, "  ")
	if s.streaming {
		content += "  " + styleStatusStreaming.Render("● streaming")
	}

	DrawStyled(scr, area, styleStatusBar, content)
	return nil
}
