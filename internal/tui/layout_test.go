package tui

import (
	"testing"

	"github.com/parleychat/parley/internal/geometry"
)

func TestCalculateLayoutModes(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		want   LayoutMode
	}{
		{"wide and tall is desktop", 120, 40, LayoutDesktop},
		{"exactly at breakpoints is desktop", 90, 20, LayoutDesktop},
		{"narrow is compact", 80, 40, LayoutCompact},
		{"short is compact", 120, 15, LayoutCompact},
		{"tiny is compact", 40, 10, LayoutCompact},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := CalculateLayout(tt.width, geometry.Geometry{VisibleHeight: tt.height}, false)
			if l.Mode != tt.want {
				t.Errorf("CalculateLayout(%d, %d) mode = %v, want %v", tt.width, tt.height, l.Mode, tt.want)
			}
		})
	}
}

func TestCalculateLayoutRows(t *testing.T) {
	l := CalculateLayout(120, geometry.Geometry{VisibleHeight: 40}, false)

	if got := l.Header.Dy(); got != HeaderHeight {
		t.Errorf("header height = %d, want %d", got, HeaderHeight)
	}
	if got := l.Status.Dy(); got != StatusHeight {
		t.Errorf("status height = %d, want %d", got, StatusHeight)
	}
	if got := l.Input.Dy(); got != InputHeight {
		t.Errorf("input height = %d, want %d", got, InputHeight)
	}

	wantMessages := 40 - HeaderHeight - StatusHeight - InputHeight
	if got := l.Messages.Dy(); got != wantMessages {
		t.Errorf("messages height = %d, want %d", got, wantMessages)
	}

	// Status sits at the bottom of the visible area.
	if l.Status.Max.Y != 40 {
		t.Errorf("status bottom = %d, want 40", l.Status.Max.Y)
	}
}

func TestCalculateLayoutVisibleOffset(t *testing.T) {
	// The platform withheld the top 5 rows: nothing may be placed there.
	l := CalculateLayout(120, geometry.Geometry{VisibleHeight: 30, VisibleOffset: 5}, false)

	if l.Area.Min.Y != 5 {
		t.Errorf("area top = %d, want 5", l.Area.Min.Y)
	}
	if l.Header.Min.Y != 5 {
		t.Errorf("header top = %d, want 5", l.Header.Min.Y)
	}
	if l.Status.Max.Y != 35 {
		t.Errorf("status bottom = %d, want 35", l.Status.Max.Y)
	}
}

func TestCalculateLayoutSidebar(t *testing.T) {
	l := CalculateLayout(120, geometry.Geometry{VisibleHeight: 40}, false)
	if l.Sidebar.Dx() != SidebarWidthDesktop {
		t.Errorf("sidebar width = %d, want %d", l.Sidebar.Dx(), SidebarWidthDesktop)
	}
	if l.Messages.Max.X >= l.Sidebar.Min.X {
		t.Errorf("messages (%d) must end before sidebar (%d)", l.Messages.Max.X, l.Sidebar.Min.X)
	}

	// Hidden sidebar gives the main column the full width.
	hidden := CalculateLayout(120, geometry.Geometry{VisibleHeight: 40}, true)
	if hidden.Sidebar.Dx() != 0 {
		t.Errorf("hidden sidebar width = %d, want 0", hidden.Sidebar.Dx())
	}
	if hidden.Messages.Dx() != 120 {
		t.Errorf("messages width = %d, want 120", hidden.Messages.Dx())
	}

	// Compact mode never has a sidebar column.
	compact := CalculateLayout(80, geometry.Geometry{VisibleHeight: 40}, false)
	if compact.Sidebar.Dx() != 0 {
		t.Errorf("compact sidebar width = %d, want 0", compact.Sidebar.Dx())
	}
}

func TestCalculateLayoutShrinkIsIdempotent(t *testing.T) {
	g := geometry.Geometry{VisibleHeight: 25, VisibleOffset: 3}
	a := CalculateLayout(100, g, false)
	b := CalculateLayout(100, g, false)
	if a != b {
		t.Errorf("same inputs produced different layouts:\n%+v\n%+v", a, b)
	}
}

func TestCalculateLayoutTinyHeights(t *testing.T) {
	// Degenerate heights must not produce negative rectangles.
	for h := 0; h <= 6; h++ {
		l := CalculateLayout(80, geometry.Geometry{VisibleHeight: h}, false)
		if l.Messages.Dy() < 0 || l.Input.Dy() < 0 || l.Status.Dy() < 0 {
			t.Errorf("height %d produced negative region: %+v", h, l)
		}
	}
}
