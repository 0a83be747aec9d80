// Package bus runs the in-process message bus between the chat surface and
// the responder. An embedded NATS server with no listen ports carries
// prompts out of the submission path and replies back in; nothing is
// persisted and nothing leaves the process.
package bus

import (
	"errors"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"

	"github.com/parleychat/parley/internal/logger"
)

// Subjects carried on the bus.
const (
	SubjectPrompt = "parley.chat.prompt"
	SubjectReply  = "parley.chat.reply"
)

// Bus owns the embedded server and its in-process connection.
type Bus struct {
	ns   *server.Server
	conn *nats.Conn
}

// Start brings up the embedded server and connects to it in-process.
func Start() (*Bus, error) {
	logger.Debug("Starting embedded NATS server")

	opts := &server.Options{
		DontListen: true, // No network ports - in-process only
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		logger.Error("Failed to create NATS server: %v", err)
		return nil, err
	}

	go ns.Start()

	if !ns.ReadyForConnections(4 * time.Second) {
		logger.Error("NATS server failed to start within 4s timeout")
		return nil, errors.New("nats server failed to start within timeout")
	}

	conn, err := nats.Connect("", nats.InProcessServer(ns))
	if err != nil {
		logger.Error("Failed to connect to NATS in-process: %v", err)
		ns.Shutdown()
		return nil, err
	}

	logger.Debug("NATS server ready, in-process connection established")
	return &Bus{ns: ns, conn: conn}, nil
}

// PublishPrompt sends submitted user text to the responder.
func (b *Bus) PublishPrompt(text string) error {
	return b.conn.Publish(SubjectPrompt, []byte(text))
}

// PublishReply sends generated reply text back to the chat surface.
func (b *Bus) PublishReply(text string) error {
	return b.conn.Publish(SubjectReply, []byte(text))
}

// SubscribePrompt delivers each submitted prompt to fn on a NATS callback
// goroutine.
func (b *Bus) SubscribePrompt(fn func(text string)) (*nats.Subscription, error) {
	return b.conn.Subscribe(SubjectPrompt, func(msg *nats.Msg) {
		fn(string(msg.Data))
	})
}

// SubscribeReply delivers each reply to fn on a NATS callback goroutine.
func (b *Bus) SubscribeReply(fn func(text string)) (*nats.Subscription, error) {
	return b.conn.Subscribe(SubjectReply, func(msg *nats.Msg) {
		fn(string(msg.Data))
	})
}

// Shutdown drains the connection and stops the server, with timeouts so
// teardown never hangs the exit path.
func (b *Bus) Shutdown() error {
	logger.Debug("Starting NATS shutdown")

	if b.conn != nil {
		drainDone := make(chan error, 1)
		go func() {
			drainDone <- b.conn.Drain()
		}()

		select {
		case err := <-drainDone:
			if err != nil {
				logger.Warn("NATS drain failed, forcing close: %v", err)
				b.conn.Close()
			}
		case <-time.After(2 * time.Second):
			logger.Warn("NATS drain timed out after 2s, forcing close")
			b.conn.Close()
		}
	}

	if b.ns != nil {
		b.ns.Shutdown()

		shutdownDone := make(chan struct{})
		go func() {
			b.ns.WaitForShutdown()
			close(shutdownDone)
		}()

		select {
		case <-shutdownDone:
			logger.Debug("NATS server shut down cleanly")
		case <-time.After(5 * time.Second):
			logger.Error("NATS server shutdown timed out after 5s")
			return errors.New("nats server shutdown timed out")
		}
	}

	return nil
}
