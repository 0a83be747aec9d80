// Package stream reveals a reply one rune at a time. The engine never owns
// a timer: the host schedules ticks and calls Tick with the handle it was
// given, so a tick that outlives its stream is a harmless no-op instead of a
// stray mutation.
package stream

import (
	"errors"
	"sync"
	"time"

	"github.com/parleychat/parley/internal/logger"
)

// ErrStreamActive is returned by Start while another stream is in flight.
// The active stream is left untouched.
var ErrStreamActive = errors.New("stream already active")

type state int

const (
	stateIdle state = iota
	stateStreaming
	stateCompleted
	stateCancelled
)

// Handle identifies one stream. Ticks and cancels carry it back so the
// engine can tell a live stream's timer from a stale one.
type Handle struct {
	gen uint64
}

// Appender is the store-side sink for revealed runes.
type Appender interface {
	AppendContent(id, delta string) error
}

// Engine runs at most one stream at a time.
type Engine struct {
	appender Appender
	onAppend func()

	mu        sync.Mutex
	state     state
	gen       uint64
	messageID string
	runes     []rune
	pos       int
	interval  time.Duration
}

// New creates an idle engine. onAppend runs after every appended rune; the
// host points it at the scroll reconcile. It may be nil.
func New(appender Appender, onAppend func()) *Engine {
	return &Engine{
		appender: appender,
		onAppend: onAppend,
		state:    stateIdle,
	}
}

// Start begins streaming fullText into the message with the given id, one
// rune per Tick. It returns ErrStreamActive while a stream is in flight.
func (e *Engine) Start(messageID, fullText string, interval time.Duration) (Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == stateStreaming {
		return Handle{}, ErrStreamActive
	}

	e.gen++
	e.state = stateStreaming
	e.messageID = messageID
	e.runes = []rune(fullText)
	e.pos = 0
	e.interval = interval

	if len(e.runes) == 0 {
		e.state = stateCompleted
	}
	return Handle{gen: e.gen}, nil
}

// Tick reveals the next rune of the stream identified by h and reports
// whether the stream is still running. A stale handle, or a stream that has
// completed or been cancelled, does nothing: the store cannot be mutated by
// a timer that fired after teardown.
func (e *Engine) Tick(h Handle) bool {
	e.mu.Lock()
	if e.state != stateStreaming || h.gen != e.gen {
		e.mu.Unlock()
		return false
	}

	id := e.messageID
	delta := string(e.runes[e.pos])
	e.pos++
	if e.pos == len(e.runes) {
		e.state = stateCompleted
	}

	// The append happens under the lock so it serializes with Cancel: once
	// Cancel returns, no tick can still be mid-mutation. The appender must
	// not call back into the engine.
	if err := e.appender.AppendContent(id, delta); err != nil {
		logger.Error("stream: append to message %s failed: %v", id, err)
		e.state = stateCancelled
		e.mu.Unlock()
		return false
	}
	more := e.state == stateStreaming
	e.mu.Unlock()

	if e.onAppend != nil {
		e.onAppend()
	}
	return more
}

// Cancel stops the stream identified by h. Completed, cancelled, and
// unknown handles are no-ops; after Cancel returns, no tick for h can mutate
// the store again.
func (e *Engine) Cancel(h Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == stateStreaming && h.gen == e.gen {
		e.state = stateCancelled
	}
}

// Streaming reports whether a stream is currently in flight.
func (e *Engine) Streaming() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == stateStreaming
}

// Interval returns the tick interval of the most recent stream, for the
// host's timer scheduling.
func (e *Engine) Interval() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.interval
}
