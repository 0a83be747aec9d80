package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/parleychat/parley/internal/logger"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Terminal chat client with streaming replies",
	Long: `parley is a full-screen terminal chat client built on Bubbletea v2.

It keeps the chat panel sized to the terminal's visible area as it resizes,
anchors the scroll position to the newest message while replies stream in
rune by rune, and never fights an active mouse gesture. Replies come from an
in-process responder over an embedded NATS bus.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
