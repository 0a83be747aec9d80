// Package responder is the reply side of the bus: it hears every submitted
// prompt and publishes a canned reply after a configurable delay, standing
// in for a real generation backend.
package responder

import (
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/parleychat/parley/internal/bus"
	"github.com/parleychat/parley/internal/logger"
)

// DefaultReply is published for every prompt. It exercises the renderer:
// markdown structure plus a fenced code block.
const DefaultReply = "Thanks for your message! Here's a quick example:\n\n" +
	"```go\nfunc greet(name string) string {\n\treturn \"Hello, \" + name\n}\n```\n\n" +
	"Let me know if you'd like to go deeper on any of this.\n" +
	"- It handles *any* name you pass in.\n" +
	"- It never fails.\n"

// Responder replies to prompts with a fixed text after a delay.
type Responder struct {
	b     *bus.Bus
	reply string
	delay time.Duration

	mu     sync.Mutex
	sub    *nats.Subscription
	timers []*time.Timer
}

// New creates a stopped responder. An empty reply falls back to
// DefaultReply.
func New(b *bus.Bus, reply string, delay time.Duration) *Responder {
	if reply == "" {
		reply = DefaultReply
	}
	return &Responder{b: b, reply: reply, delay: delay}
}

// Start subscribes to the prompt subject. Each prompt schedules one reply
// publication after the configured delay.
func (r *Responder) Start() error {
	sub, err := r.b.SubscribePrompt(func(string) {
		timer := time.AfterFunc(r.delay, func() {
			if err := r.b.PublishReply(r.reply); err != nil {
				logger.Error("responder: publish reply failed: %v", err)
			}
		})
		r.mu.Lock()
		r.timers = append(r.timers, timer)
		r.mu.Unlock()
	})
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.sub = sub
	r.mu.Unlock()
	return nil
}

// Stop unsubscribes and drops any replies still waiting on their delay.
func (r *Responder) Stop() {
	r.mu.Lock()
	sub := r.sub
	r.sub = nil
	timers := r.timers
	r.timers = nil
	r.mu.Unlock()

	if sub != nil {
		if err := sub.Unsubscribe(); err != nil {
			logger.Warn("responder: unsubscribe failed: %v", err)
		}
	}
	for _, t := range timers {
		t.Stop()
	}
}
