package cmd

import (
	"github.com/envisionar/portal/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Run the HTTP server until interrupted.

The backend is chosen with BACKEND (surreal or memory); see .env.example.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := server.ShutdownContext(cmd.Context())
		defer stop()

		deps, err := loadDependencies(ctx)
		if err != nil {
			return err
		}

		addr := serveAddr
		if addr == "" {
			addr = deps.Config.GetAppAddr()
		}

		s := server.New(deps)
		s.RegisterRoutes()
		return s.Start(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to APP_ADDR)")
	rootCmd.AddCommand(serveCmd)
}
