// Package geometry reports the visible area the chat panel may occupy.
//
// The host platform (the terminal, via window-size events) owns the truth
// about how many rows are actually usable and where they start. A Probe is
// the one place that truth enters the system; everything downstream treats a
// Geometry value as a snapshot, replaced wholesale on every change.
package geometry

import "sync"

// Geometry is the visible rectangle reported by the platform: how tall the
// usable area is and how far down it starts. Values are in layout units
// (terminal rows).
type Geometry struct {
	VisibleHeight int
	VisibleOffset int
}

// Probe exposes the current visible geometry and a subscription for changes.
type Probe interface {
	// Current returns the most recently reported geometry.
	Current() Geometry
	// Live reports whether this probe will ever deliver change events.
	Live() bool
	// Subscribe registers fn to be called on every geometry change and
	// returns a cancel func. Cancel is idempotent.
	Subscribe(fn func(Geometry)) (cancel func())
}

// FeedProbe is a live Probe fed by the host's resize events. The host calls
// Set on every platform report; subscribers are notified synchronously in
// subscription order.
type FeedProbe struct {
	mu      sync.Mutex
	current Geometry
	subs    map[int]func(Geometry)
	nextID  int
}

// NewFeedProbe creates a live probe with the given initial geometry.
func NewFeedProbe(initial Geometry) *FeedProbe {
	return &FeedProbe{
		current: initial,
		subs:    make(map[int]func(Geometry)),
	}
}

// Current returns the last geometry passed to Set.
func (p *FeedProbe) Current() Geometry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Live always reports true for a feed probe.
func (p *FeedProbe) Live() bool { return true }

// Subscribe registers a change handler and returns its cancel func.
func (p *FeedProbe) Subscribe(fn func(Geometry)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

// Set records a new geometry report and notifies subscribers. The last
// write wins; no coalescing or debouncing.
func (p *FeedProbe) Set(g Geometry) {
	p.mu.Lock()
	p.current = g
	fns := make([]func(Geometry), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(g)
	}
}

// StaticProbe is the degraded mode: the platform cannot report visible-area
// changes, so the probe holds one fixed geometry and never fires.
type StaticProbe struct {
	geom Geometry
}

// NewStaticProbe creates a probe that reports g forever.
func NewStaticProbe(g Geometry) *StaticProbe {
	return &StaticProbe{geom: g}
}

// Current returns the fixed geometry.
func (p *StaticProbe) Current() Geometry { return p.geom }

// Live always reports false for a static probe.
func (p *StaticProbe) Live() bool { return false }

// Subscribe is accepted but the handler will never be invoked.
func (p *StaticProbe) Subscribe(func(Geometry)) func() {
	return func() {}
}
