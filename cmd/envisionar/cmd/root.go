package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/envisionar/portal/internal/app"
	"github.com/envisionar/portal/internal/config"
	"github.com/envisionar/portal/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "envisionar",
	Short: "Envisionar portal",
	Long: `Envisionar serves the church-program portal: login, pastor dashboard
and member dashboard.

Available commands:
  serve          Run the HTTP server
  dashboard      Load a dashboard from the command line
  check-login    Run the login flow for a set of credentials
  seed           Write a demo seed file for the memory backend
  version        Print the version

Use "envisionar [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.New()
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadDependencies reads and validates configuration, then builds the services.
func loadDependencies(ctx context.Context) (*app.Dependencies, error) {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return app.Build(ctx, cfg)
}
