package tui

import (
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/parleychat/parley/internal/geometry"
)

// Layout breakpoints and dimensions
const (
	// CompactWidthBreakpoint is the minimum width for desktop mode
	CompactWidthBreakpoint = 90
	// CompactHeightBreakpoint is the minimum height for desktop mode
	CompactHeightBreakpoint = 20
	// SidebarWidthDesktop is the width of the history sidebar in desktop mode
	SidebarWidthDesktop = 32
	// HeaderHeight is the height of the header in rows
	HeaderHeight = 1
	// InputHeight is the height of the composer in rows
	InputHeight = 3
	// StatusHeight is the height of the status bar in rows
	StatusHeight = 1
)

// LayoutMode represents the layout mode based on terminal size
type LayoutMode int

const (
	// LayoutDesktop is the full layout with sidebar
	LayoutDesktop LayoutMode = iota
	// LayoutCompact is the compact layout without sidebar
	LayoutCompact
)

// Layout defines the rectangular regions for all UI components. The whole
// layout lives inside the visible rectangle the platform reports, so rows
// the terminal has withheld are never drawn into.
type Layout struct {
	Mode     LayoutMode
	Area     uv.Rectangle
	Header   uv.Rectangle
	Messages uv.Rectangle
	Input    uv.Rectangle
	Sidebar  uv.Rectangle
	Status   uv.Rectangle
}

// IsCompact returns true if the layout is in compact mode
func (l Layout) IsCompact() bool {
	return l.Mode == LayoutCompact
}

// CalculateLayout computes the layout rectangles for the given terminal
// width and visible geometry. sidebarHidden suppresses the sidebar column
// even in desktop mode.
func CalculateLayout(width int, g geometry.Geometry, sidebarHidden bool) Layout {
	mode := LayoutDesktop
	if width < CompactWidthBreakpoint || g.VisibleHeight < CompactHeightBreakpoint {
		mode = LayoutCompact
	}

	// The usable area starts at the visible offset and spans the visible
	// height, not the full terminal.
	area := uv.Rect(0, g.VisibleOffset, width, g.VisibleHeight)

	// Split vertically: header | body | status
	headerRect, rest := uv.SplitVertical(area, uv.Fixed(HeaderHeight))
	bodyHeight := rest.Dy() - StatusHeight
	if bodyHeight < 0 {
		bodyHeight = 0
	}
	bodyRect, statusRect := uv.SplitVertical(rest, uv.Fixed(bodyHeight))

	// Split body horizontally: main | sidebar (desktop mode only)
	mainRect := bodyRect
	sidebarRect := uv.Rectangle{}
	if mode == LayoutDesktop && !sidebarHidden {
		sidebarWidth := SidebarWidthDesktop
		if bodyRect.Dx()/3 < sidebarWidth {
			sidebarWidth = bodyRect.Dx() / 3
		}
		mainRect, sidebarRect = uv.SplitHorizontal(bodyRect, uv.Fixed(bodyRect.Dx()-sidebarWidth))
		mainRect.Max.X -= 1 // 1-char gap so header rules don't visually merge
	}

	// Split main vertically: messages | input
	messagesHeight := mainRect.Dy() - InputHeight
	if messagesHeight < 0 {
		messagesHeight = 0
	}
	messagesRect, inputRect := uv.SplitVertical(mainRect, uv.Fixed(messagesHeight))

	return Layout{
		Mode:     mode,
		Area:     area,
		Header:   headerRect,
		Messages: messagesRect,
		Input:    inputRect,
		Sidebar:  sidebarRect,
		Status:   statusRect,
	}
}
