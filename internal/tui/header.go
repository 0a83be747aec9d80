package tui

import (
	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
)

// Header is the one-row title bar.
type Header struct {
	title string
}

var _ Drawable = (*Header)(nil)

// NewHeader creates the header with the given title.
func NewHeader(title string) *Header {
	return &Header{title: title}
}

// Draw renders the header bar.
func (h *Header) Draw(scr uv.Screen, area uv.Rectangle) *tea.Cursor {
	content := styleHeaderTitle.Render(h.title)
	DrawStyled(scr, area, styleHeader, content)
	return nil
}
