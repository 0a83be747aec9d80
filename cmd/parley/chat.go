package main

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/parleychat/parley/internal/bus"
	"github.com/parleychat/parley/internal/config"
	"github.com/parleychat/parley/internal/logger"
	"github.com/parleychat/parley/internal/responder"
	"github.com/parleychat/parley/internal/tui"
)

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if level, err := logger.ParseLevel(cfg.LogLevel); err == nil {
		logger.Default.Configure(level, cfg.LogFile)
	}

	// Embedded bus first: everything else hangs off it.
	b, err := bus.Start()
	if err != nil {
		return fmt.Errorf("failed to start message bus: %w", err)
	}
	defer func() {
		if err := b.Shutdown(); err != nil {
			logger.Error("Bus shutdown failed: %v", err)
		}
	}()

	resp := responder.New(b, "", time.Duration(cfg.ReplyDelayMs)*time.Millisecond)
	if err := resp.Start(); err != nil {
		return fmt.Errorf("failed to start responder: %w", err)
	}
	defer resp.Stop()

	app := tui.NewApp(cfg, b)

	// Replies arrive on a NATS callback goroutine; DeliverReply hands them
	// to the update loop without blocking the callback.
	replySub, err := b.SubscribeReply(app.DeliverReply)
	if err != nil {
		return fmt.Errorf("failed to subscribe to replies: %w", err)
	}
	defer func() {
		if err := replySub.Unsubscribe(); err != nil {
			logger.Warn("Reply unsubscribe failed: %v", err)
		}
	}()

	logger.Info("Starting chat session")
	if _, err := tea.NewProgram(app).Run(); err != nil {
		return fmt.Errorf("chat session failed: %w", err)
	}

	return nil
}
