package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/noteful/internal/noteful/app"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}

		application, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		return application.Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8000, "Port to listen on (overrides PORT)")
}
