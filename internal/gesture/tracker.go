// Package gesture tracks whether the user is actively holding a pointer
// gesture. The flag suppresses auto-pinning while the user is dragging
// through history; it is never used to schedule work.
package gesture

import "sync"

// Tracker holds the single boolean gesture state. Transitions are
// last-event-wins with no debouncing: Press moves to active, Release and
// CancelAll move to idle.
type Tracker struct {
	mu     sync.Mutex
	active bool
}

// NewTracker creates an idle tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Press records a pointer-down anywhere in the surface.
func (t *Tracker) Press() {
	t.mu.Lock()
	t.active = true
	t.mu.Unlock()
}

// Release records the matching pointer-up.
func (t *Tracker) Release() {
	t.mu.Lock()
	t.active = false
	t.mu.Unlock()
}

// CancelAll forces the tracker back to idle, for when the platform cancels
// the gesture out from under us (terminal focus loss, suspend).
func (t *Tracker) CancelAll() {
	t.mu.Lock()
	t.active = false
	t.mu.Unlock()
}

// Active reports whether a gesture is currently in progress.
func (t *Tracker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}
