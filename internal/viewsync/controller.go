// Package viewsync keeps a chat panel sized to the visible area the
// platform reports. The controller owns the subscription to the geometry
// probe and pushes every report into the panel as one atomic apply, followed
// by a scroll reconcile so a resize never strands a pinned view above the
// bottom.
package viewsync

import (
	"sync"
	"time"

	"github.com/parleychat/parley/internal/anchor"
	"github.com/parleychat/parley/internal/geometry"
	"github.com/parleychat/parley/internal/logger"
)

// Panel is the layout surface the controller drives. Apply must take the
// height and offset together; applying them separately lets a render slip in
// between and show a half-updated frame.
type Panel interface {
	Apply(geometry.Geometry)
}

// Controller wires a geometry probe to a panel and a scroll anchor.
type Controller struct {
	probe     geometry.Probe
	panel     Panel
	anchor    *anchor.Anchor
	container anchor.Container
	settle    time.Duration

	mu      sync.Mutex
	started bool
	cancel  func()
}

// New creates a stopped controller. settle is the delay the host should wait
// after the input control gains focus before forcing a reconcile; the first
// geometry report after focus often arrives while the platform is still
// resizing.
func New(probe geometry.Probe, panel Panel, a *anchor.Anchor, c anchor.Container, settle time.Duration) *Controller {
	return &Controller{
		probe:     probe,
		panel:     panel,
		anchor:    a,
		container: c,
		settle:    settle,
	}
}

// SettleDelay returns the configured post-focus settle delay.
func (c *Controller) SettleDelay() time.Duration { return c.settle }

// Start applies the probe's current geometry once and, if the probe is live,
// subscribes for changes. Calling Start on a started controller does
// nothing.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	c.apply(c.probe.Current())

	if c.probe.Live() {
		cancel := c.probe.Subscribe(c.apply)
		c.mu.Lock()
		c.cancel = cancel
		c.mu.Unlock()
	}
}

// Stop unsubscribes from the probe. Safe to call before Start and safe to
// call repeatedly.
func (c *Controller) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.started = false
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Reconcile runs one scroll reconcile pass outside the geometry flow, for
// message changes and the post-focus forced pass.
func (c *Controller) Reconcile(force bool) {
	c.anchor.Reconcile(c.container, force)
}

// apply runs on the probe's dispatch path, so a failure anywhere in the
// pass is logged and dropped; a bad metrics read or panel apply must not
// take down the host's event loop.
func (c *Controller) apply(g geometry.Geometry) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("viewsync: geometry apply failed: %v", r)
		}
	}()

	// Capture the pin state before the layout moves: a height shrink pushes
	// the bottom away and would read as unpinned afterwards, stranding a
	// reader who was glued to the newest message.
	pinned := c.anchor.Pinned(c.container)
	c.panel.Apply(g)
	c.anchor.ReconcileFrom(c.container, pinned)
}
