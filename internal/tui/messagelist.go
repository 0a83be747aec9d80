package tui

import (
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/parleychat/parley/internal/anchor"
	"github.com/parleychat/parley/internal/chat"
)

// MessageList displays the conversation in a scrollable viewport. It is the
// scroll container the anchor reconciles against: metrics are read straight
// off the viewport and a scroll jump is one SetYOffset call.
type MessageList struct {
	viewport     viewport.Model
	items        []MessageItem
	itemIndex    map[string]int // message id → item index
	width        int
	height       int
	ready        bool
	viewportArea uv.Rectangle // screen area for mouse hit detection
}

// Compile-time interface checks
var _ Drawable = (*MessageList)(nil)
var _ anchor.Container = (*MessageList)(nil)

// NewMessageList creates an empty message list.
func NewMessageList() *MessageList {
	return &MessageList{
		itemIndex: make(map[string]int),
	}
}

// SetSize updates the viewport dimensions and re-renders the content.
func (m *MessageList) SetSize(width, height int) {
	m.width = width
	m.height = height

	if !m.ready {
		m.viewport = viewport.New(
			viewport.WithWidth(width),
			viewport.WithHeight(height),
		)
		m.viewport.MouseWheelEnabled = true
		m.viewport.MouseWheelDelta = 3
		m.ready = true
	} else {
		m.viewport.SetWidth(width)
		m.viewport.SetHeight(height)
	}

	m.invalidate()
	m.refreshContent()
}

// SetMessages rebuilds the item list from the conversation. streamingID
// names the message currently receiving streamed content ("" when none).
// Existing agent items are updated in place so their render caches survive
// appends that didn't touch them.
func (m *MessageList) SetMessages(msgs []chat.Message, streamingID string) {
	if !m.ready {
		return
	}

	for _, msg := range msgs {
		idx, ok := m.itemIndex[msg.ID]
		if !ok {
			var item MessageItem
			switch msg.Role {
			case chat.RoleUser:
				item = NewUserMessageItem(msg.ID, msg.Content)
			default:
				item = NewAgentMessageItem(msg.ID, msg.Content, msg.ID == streamingID)
			}
			m.itemIndex[msg.ID] = len(m.items)
			m.items = append(m.items, item)
			continue
		}

		if agentItem, ok := m.items[idx].(*AgentMessageItem); ok {
			agentItem.SetContent(msg.Content, msg.ID == streamingID)
		}
	}

	m.refreshContent()
}

// Metrics reports the viewport's scroll state in lines.
func (m *MessageList) Metrics() anchor.Metrics {
	return anchor.Metrics{
		ScrollPosition: m.viewport.YOffset(),
		ContentExtent:  m.viewport.TotalLineCount(),
		ViewExtent:     m.viewport.Height(),
	}
}

// SetScrollPosition moves the viewport to the given line offset. The
// viewport clamps out-of-range offsets, so passing the content extent lands
// exactly on the bottom.
func (m *MessageList) SetScrollPosition(pos int) {
	m.viewport.SetYOffset(pos)
}

// ScrollBy scrolls the viewport by the given number of lines. Positive
// scrolls down.
func (m *MessageList) ScrollBy(lines int) {
	m.viewport.SetYOffset(m.viewport.YOffset() + lines)
}

// IsViewportArea reports whether the screen position lies inside the list.
func (m *MessageList) IsViewportArea(x, y int) bool {
	return x >= m.viewportArea.Min.X && x < m.viewportArea.Max.X &&
		y >= m.viewportArea.Min.Y && y < m.viewportArea.Max.Y
}

// Update forwards key-based scrolling to the viewport.
func (m *MessageList) Update(msg tea.Msg) tea.Cmd {
	if !m.ready {
		return nil
	}

	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "pgup":
			m.ScrollBy(-m.viewport.Height())
		case "pgdown":
			m.ScrollBy(m.viewport.Height())
		case "home":
			m.viewport.GotoTop()
		case "end":
			m.viewport.GotoBottom()
		}
	}

	return nil
}

// Draw renders the message list to a screen buffer.
func (m *MessageList) Draw(scr uv.Screen, area uv.Rectangle) *tea.Cursor {
	if !m.ready || len(m.items) == 0 {
		empty := styleEmptyState.Render("Say something to start the conversation")
		uv.NewStyledString(empty).Draw(scr, area)
		m.viewportArea = area
		return nil
	}

	content := m.viewport.View()
	contentArea := uv.Rect(area.Min.X+1, area.Min.Y, area.Dx()-1, area.Dy())
	m.viewportArea = contentArea
	uv.NewStyledString(content).Draw(scr, contentArea)

	if m.viewport.TotalLineCount() > m.viewport.Height() {
		DrawScrollIndicator(scr, area, m.viewport.ScrollPercent())
	}

	return nil
}

// invalidate drops every item's render cache, for width changes.
func (m *MessageList) invalidate() {
	for _, item := range m.items {
		switch it := item.(type) {
		case *UserMessageItem:
			it.cachedWidth = 0
			it.cachedRender = ""
		case *AgentMessageItem:
			it.cachedWidth = 0
			it.cachedRender = ""
		}
	}
}

// refreshContent rebuilds the viewport content from the item list. Scroll
// position is left alone: following the bottom is the anchor's decision, not
// the renderer's.
func (m *MessageList) refreshContent() {
	if !m.ready {
		return
	}

	// Account for the 1-char left margin used in Draw
	contentWidth := m.width - 1
	if contentWidth < 1 {
		contentWidth = 1
	}

	var rendered strings.Builder
	for i, item := range m.items {
		rendered.WriteString(item.Render(contentWidth))
		if i < len(m.items)-1 {
			rendered.WriteString("\n\n")
		}
	}

	m.viewport.SetContent(rendered.String())
}
