package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/noteful/internal/noteful/app"
)

var rootCmd = &cobra.Command{
	Use:   "noteful",
	Short: "Noteful serves folders and notes behind a cookie session",
	Long: `Noteful is a small notes API. Users log in with a username and password
and receive a signed session cookie that gates every other route.

All settings are read from the environment (PORT, DATABASE_DRIVER,
ACCESS_TOKEN_SECRET, ...); flags only override a handful of them.`,
	SilenceUsage: true,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) app.Config {
	cfg := app.LoadConfig()
	if f := cmd.Flags().Lookup("db"); f != nil && f.Changed {
		cfg.DatabaseFile = f.Value.String()
	}
	if f := cmd.Flags().Lookup("pepper"); f != nil && f.Changed {
		cfg.PepperFile = f.Value.String()
	}
	return cfg
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "SQLite database file (overrides DATABASE_FILE)")
	rootCmd.PersistentFlags().String("pepper", "", "Pepper file (overrides PEPPER_FILE)")
}
