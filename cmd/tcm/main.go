package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tcm/internal/cli"
	"tcm/internal/cli/commands"
	"tcm/internal/config"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "tcm",
		Short:         "Terminal client for test case management",
		Long:          `Manage test cases, test suites and assignees against a test case management REST API, and follow execution progress on an analytics dashboard. Run without a command to open the interactive client.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Defaults, .env and environment; flags are applied before each command runs
	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var flags cli.Flags
	cmds := commands.NewCommands(cfg)
	cmds.Register(rootCmd, &flags, cfg)

	err = rootCmd.Execute()
	cmds.Deps().Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
