package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/gosimple/slug"
)

// HistoryEntry is one conversation in the sidebar list.
type HistoryEntry struct {
	Title string
	Slug  string
}

// Sidebar shows the conversation history list. It is display-only: entries
// are fixed for the session and carry slug ids derived from their titles.
type Sidebar struct {
	entries []HistoryEntry
	width   int
	height  int
}

// Compile-time interface checks
var _ Drawable = (*Sidebar)(nil)
var _ Sizable = (*Sidebar)(nil)

// NewSidebar creates the sidebar with the given conversation titles.
func NewSidebar(titles []string) *Sidebar {
	entries := make([]HistoryEntry, 0, len(titles))
	for _, title := range titles {
		entries = append(entries, HistoryEntry{
			Title: title,
			Slug:  slug.Make(title),
		})
	}
	return &Sidebar{entries: entries}
}

// Entries returns the history entries.
func (s *Sidebar) Entries() []HistoryEntry {
	return s.entries
}

// SetSize updates the sidebar dimensions.
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Update is a no-op; the sidebar has no interactive state.
func (s *Sidebar) Update(tea.Msg) tea.Cmd {
	return nil
}

// Draw renders the history list with its panel header.
func (s *Sidebar) Draw(scr uv.Screen, area uv.Rectangle) *tea.Cursor {
	inner := DrawPanel(scr, area, "History", false)

	if len(s.entries) == 0 {
		uv.NewStyledString(styleEmptyState.Render("No conversations yet")).Draw(scr, inner)
		return nil
	}

	var lines []string
	for _, entry := range s.entries {
		title := entry.Title
		if len(title) > inner.Dx()-2 && inner.Dx() > 3 {
			title = title[:inner.Dx()-3] + "…"
		}
		lines = append(lines, styleSidebarItem.Render(title))
		lines = append(lines, styleSidebarSlug.Render("  "+entry.Slug))
	}
	if len(lines) > inner.Dy() {
		lines = lines[:inner.Dy()]
	}

	uv.NewStyledString(strings.Join(lines, "\n")).Draw(scr, inner)
	return nil
}
