package tui

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
)

// Composer is the message input bar at the bottom of the chat column.
type Composer struct {
	textarea textarea.Model
	focused  bool
	area     uv.Rectangle // screen area for mouse hit detection
}

// Compile-time interface checks
var _ Component = (*Composer)(nil)
var _ Focusable = (*Composer)(nil)

// NewComposer creates the input bar.
func NewComposer() *Composer {
	ta := textarea.New()
	ta.Placeholder = "Type a message..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.SetHeight(InputHeight - 1)

	return &Composer{
		textarea: ta,
	}
}

// SetSize updates the composer dimensions.
func (c *Composer) SetSize(width, height int) {
	c.textarea.SetWidth(width - 2)
	h := height - 1 // reserve the panel header row
	if h < 1 {
		h = 1
	}
	c.textarea.SetHeight(h)
}

// Focus gives the textarea keyboard focus.
func (c *Composer) Focus() tea.Cmd {
	c.focused = true
	return c.textarea.Focus()
}

// Blur removes keyboard focus from the textarea.
func (c *Composer) Blur() {
	c.focused = false
	c.textarea.Blur()
}

// SetFocus implements Focusable.
func (c *Composer) SetFocus(focused bool) {
	if focused {
		c.focused = true
		c.textarea.Focus()
		return
	}
	c.Blur()
}

// IsFocused reports whether the composer has keyboard focus.
func (c *Composer) IsFocused() bool {
	return c.focused
}

// Value returns the current input text.
func (c *Composer) Value() string {
	return c.textarea.Value()
}

// Reset clears the input after a submit.
func (c *Composer) Reset() {
	c.textarea.SetValue("")
}

// InsertNewline adds a line break at the cursor, for alt+enter.
func (c *Composer) InsertNewline() {
	c.textarea.InsertString("\n")
}

// IsInputArea reports whether the screen position lies inside the composer.
func (c *Composer) IsInputArea(x, y int) bool {
	return x >= c.area.Min.X && x < c.area.Max.X &&
		y >= c.area.Min.Y && y < c.area.Max.Y
}

// Update forwards messages to the textarea when focused.
func (c *Composer) Update(msg tea.Msg) tea.Cmd {
	if !c.focused {
		return nil
	}
	var cmd tea.Cmd
	c.textarea, cmd = c.textarea.Update(msg)
	return cmd
}

// Draw renders the composer with its panel header.
func (c *Composer) Draw(scr uv.Screen, area uv.Rectangle) *tea.Cursor {
	c.area = area
	inner := DrawPanel(scr, area, "Message", c.focused)
	inputArea := uv.Rect(inner.Min.X+1, inner.Min.Y, inner.Dx()-1, inner.Dy())
	uv.NewStyledString(c.textarea.View()).Draw(scr, inputArea)
	return nil
}
