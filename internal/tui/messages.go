package tui

import (
	"bytes"
	"strings"

	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// MessageItem represents a displayable message in the conversation view.
type MessageItem interface {
	// ID returns the unique identifier for this message item.
	ID() string
	// Render returns the rendered string representation at the given width.
	Render(width int) string
	// Height returns the number of lines this item occupies (0 if not yet rendered).
	Height() int
}

// UserMessageItem renders a message the user submitted.
type UserMessageItem struct {
	id           string
	content      string
	cachedRender string
	cachedWidth  int
}

// NewUserMessageItem creates a user message item.
func NewUserMessageItem(id, content string) *UserMessageItem {
	return &UserMessageItem{id: id, content: content}
}

// ID returns the unique identifier for this user message.
func (u *UserMessageItem) ID() string {
	return u.id
}

// Render renders the user message with its label and left border.
func (u *UserMessageItem) Render(width int) string {
	if u.cachedWidth == width && u.cachedRender != "" {
		return u.cachedRender
	}

	// Subtract 2 for the left border and padding added by styleUserBorder
	effectiveWidth := width - 2
	if effectiveWidth > 120 {
		effectiveWidth = 120
	}
	if effectiveWidth < 1 {
		effectiveWidth = 1
	}

	body := styleUserLabel.Render("You") + "\n" + wrapText(u.content, effectiveWidth)
	result := styleUserBorder.Render(body)

	u.cachedRender = result
	u.cachedWidth = width
	return result
}

// Height returns the number of lines this user message occupies.
func (u *UserMessageItem) Height() int {
	return renderedHeight(u.cachedRender)
}

// AgentMessageItem renders an agent reply. While the reply is still
// streaming the body is rendered cheaply: plain wrapping with chroma
// highlighting on closed code fences. Once the stream finishes the full
// markdown goes through glamour.
type AgentMessageItem struct {
	id           string
	content      string
	streaming    bool
	cachedRender string
	cachedWidth  int
}

// NewAgentMessageItem creates an agent message item.
func NewAgentMessageItem(id, content string, streaming bool) *AgentMessageItem {
	return &AgentMessageItem{id: id, content: content, streaming: streaming}
}

// ID returns the unique identifier for this agent message.
func (a *AgentMessageItem) ID() string {
	return a.id
}

// SetContent replaces the message body and invalidates the render cache.
func (a *AgentMessageItem) SetContent(content string, streaming bool) {
	if content == a.content && streaming == a.streaming {
		return
	}
	a.content = content
	a.streaming = streaming
	a.cachedWidth = 0
	a.cachedRender = ""
}

// Render renders the agent message at the given width.
func (a *AgentMessageItem) Render(width int) string {
	if a.cachedWidth == width && a.cachedRender != "" {
		return a.cachedRender
	}

	effectiveWidth := width - 2
	if effectiveWidth > 120 {
		effectiveWidth = 120
	}
	if effectiveWidth < 1 {
		effectiveWidth = 1
	}

	var body string
	if a.streaming {
		body = renderStreamingBody(a.content, effectiveWidth)
		if body == "" {
			body = styleEmptyState.Render("…")
		}
	} else {
		body = renderMarkdown(a.content, effectiveWidth)
	}

	result := styleAgentBorder.Render(styleAgentLabel.Render("Agent") + "\n" + body)

	a.cachedRender = result
	a.cachedWidth = width
	return result
}

// Height returns the number of lines this agent message occupies.
func (a *AgentMessageItem) Height() int {
	return renderedHeight(a.cachedRender)
}

func renderedHeight(rendered string) int {
	if rendered == "" {
		return 0
	}
	lines := 1
	for _, ch := range rendered {
		if ch == '\n' {
			lines++
		}
	}
	return lines
}

// renderStreamingBody renders partially-streamed markdown without glamour.
// Prose is word-wrapped as-is; closed code fences are syntax highlighted. A
// fence that is still open (the closing ``` has not streamed in yet) renders
// as plain code so the block never flickers between styles mid-stream.
func renderStreamingBody(content string, width int) string {
	var out []string
	lines := strings.Split(content, "\n")

	i := 0
	for i < len(lines) {
		line := lines[i]
		if strings.HasPrefix(line, "```") {
			lang := strings.TrimSpace(strings.TrimPrefix(line, "```"))

			// Collect the fence body up to the closing marker.
			var code []string
			closed := false
			j := i + 1
			for ; j < len(lines); j++ {
				if strings.HasPrefix(lines[j], "```") {
					closed = true
					break
				}
				code = append(code, lines[j])
			}

			source := strings.Join(code, "\n")
			if closed && source != "" {
				out = append(out, highlightCode(source, lang))
			} else if source != "" {
				out = append(out, styleCodeContent.Render(source))
			}

			if closed {
				i = j + 1
			} else {
				i = j
			}
			continue
		}

		out = append(out, wrapText(line, width))
		i++
	}

	return strings.Join(out, "\n")
}

// highlightCode applies syntax highlighting to source code and returns a
// string with ANSI color codes for terminal display.
//
// It uses the fence's language tag to pick a lexer, falling back to content
// analysis, and finally to a plain text lexer. The output uses true color
// (24-bit) ANSI codes.
func highlightCode(source, lang string) string {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}

	// Use terminal16m formatter for true color output
	formatter := formatters.Get("terminal16m")
	if formatter == nil {
		formatter = formatters.Get("terminal256")
	}
	if formatter == nil {
		return styleCodeContent.Render(source)
	}

	baseStyle := styles.Get("monokai")
	if baseStyle == nil {
		baseStyle = styles.Fallback
	}

	// Transform all token backgrounds to match our code block background
	// (colorSurface0). Monokai's own #272822 clashes with the palette.
	bgColour := chroma.MustParseColour("#313244")
	style, err := baseStyle.Builder().Transform(func(entry chroma.StyleEntry) chroma.StyleEntry {
		entry.Background = bgColour
		return entry
	}).Build()
	if err != nil {
		style = baseStyle
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return styleCodeContent.Render(source)
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return styleCodeContent.Render(source)
	}

	return strings.TrimRight(buf.String(), "\n")
}
