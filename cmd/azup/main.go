package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/systmms/azup/cmd/azup/commands"
	"github.com/systmms/azup/internal/config"
	"github.com/systmms/azup/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	var (
		configFile string
		noColor    bool
		debug      bool
	)

	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "azup",
		Short: "Provision Azure environments and materialize their settings",
		Long: `azup drives an ARM template deployment for a project/environment/region
triple and writes the resulting resource identifiers and fetched credentials
to a local .{environment}.env settings file.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg.Path = configFile
			cfg.Logger = logging.New(debug, noColor)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "azup.yaml", "Defaults file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		commands.NewUpdateCommand(cfg),
		commands.NewDeleteCommand(cfg),
		commands.NewCancelCommand(cfg),
		commands.NewEnvCommand(cfg),
	)

	return rootCmd.Execute()
}
