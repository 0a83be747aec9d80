package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/parleychat/parley/internal/config"
)

var configFlags struct {
	project bool
	force   bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create a parley configuration file",
	Long: `Create a parley configuration file with the default tuning values.

By default, creates a global config at ~/.config/parley/parley.yml.
Use --project to create a project-local config in the current directory.`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVarP(&configFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	configCmd.Flags().BoolVarP(&configFlags.force, "force", "f", false, "Overwrite existing config file")
}

func runConfig(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if configFlags.project {
		targetPath = config.ProjectPath()
	}

	if !configFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	cfg := &config.Config{
		PinThreshold:   config.DefaultPinThreshold,
		FocusSettleMs:  config.DefaultFocusSettleMs,
		TickIntervalMs: config.DefaultTickIntervalMs,
		ReplyDelayMs:   config.DefaultReplyDelayMs,
		SidebarVisible: true,
		LogLevel:       "info",
		LogFile:        "",
	}

	var err error
	if configFlags.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Config written to: %s\n\n", targetPath)
	fmt.Println("Run 'parley' to start chatting.")

	return nil
}

// fileExists checks if a file exists (helper for the config command).
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
