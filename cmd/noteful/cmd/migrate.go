package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/noteful/internal/noteful/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		logger := app.NewLogger(cfg)

		db, err := app.OpenStore(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		return db.Close()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
