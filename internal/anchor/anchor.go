// Package anchor decides whether a scroll container should follow its
// growing content. Streaming text and viewport resizes both move the bottom
// of the content continuously: always jumping causes visible jank and fights
// manual scroll-back, never jumping breaks the live-chat feel. The
// compromise is a pin-distance heuristic with gesture suppression.
package anchor

import (
	"github.com/parleychat/parley/internal/logger"
)

// Metrics is a point-in-time reading of a scroll container. It is re-read
// from the container on every reconcile and never cached: layout may have
// shifted between any two reconcile passes.
type Metrics struct {
	ScrollPosition int // first visible line
	ContentExtent  int // total content lines
	ViewExtent     int // visible lines
}

// DistanceFromBottom returns how many lines of content lie below the
// visible window.
func (m Metrics) DistanceFromBottom() int {
	return m.ContentExtent - m.ScrollPosition - m.ViewExtent
}

// Container is a scrollable region the anchor can reconcile.
type Container interface {
	Metrics() Metrics
	SetScrollPosition(pos int)
}

// GestureState reports whether the user currently holds a pointer gesture.
type GestureState interface {
	Active() bool
}

// Anchor performs reconciling scroll jumps against a container.
type Anchor struct {
	pinThreshold int
	gesture      GestureState
}

// New creates an anchor with the given pin threshold in lines. A container
// whose bottom is within pinThreshold lines of visible counts as pinned.
// gesture may be nil, which reads as never active.
func New(pinThreshold int, gesture GestureState) *Anchor {
	return &Anchor{
		pinThreshold: pinThreshold,
		gesture:      gesture,
	}
}

// PinThreshold returns the configured pin distance.
func (a *Anchor) PinThreshold() int { return a.pinThreshold }

// Pinned reports whether the container currently counts as pinned to the
// bottom of its content.
func (a *Anchor) Pinned(c Container) bool {
	return c.Metrics().DistanceFromBottom() < a.pinThreshold
}

// Reconcile re-reads the container's metrics and jumps to the bottom when
// forced, or when the view is pinned and no gesture is in progress. In every
// other case the scroll position is left untouched: a user reading history
// must never be yanked down.
//
// Reconcile never lets a failure escape into the caller's event dispatch; a
// panicking pass is logged and dropped so the next event proceeds normally.
func (a *Anchor) Reconcile(c Container, force bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("anchor: reconcile pass failed: %v", r)
		}
	}()

	m := c.Metrics()

	if !force {
		if m.DistanceFromBottom() >= a.pinThreshold {
			return
		}
		if a.gesture != nil && a.gesture.Active() {
			return
		}
	}

	c.SetScrollPosition(m.ContentExtent)
}

// ReconcileFrom is Reconcile with the pin decision supplied by the caller.
// A view extent change moves the bottom out from under the reader, so the
// caller captures whether the view was pinned before mutating the layout
// and jumps based on that earlier state. Gesture suppression still applies.
func (a *Anchor) ReconcileFrom(c Container, pinned bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("anchor: reconcile pass failed: %v", r)
		}
	}()

	if !pinned {
		return
	}
	if a.gesture != nil && a.gesture.Active() {
		return
	}

	c.SetScrollPosition(c.Metrics().ContentExtent)
}
