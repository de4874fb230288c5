package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/noteful/internal/noteful/app"
	"github.com/aussiebroadwan/noteful/internal/noteful/service"
	"github.com/aussiebroadwan/noteful/pkg/cryptox"
)

const generatedPasswordLen = 20

var (
	userName     string
	userPassword string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage login accounts",
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a user that can log in",
	Long: `Create a user that can log in. When --password is omitted a random
password is generated and printed once.`,
	RunE: runUserAdd,
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	logger := app.NewLogger(cfg)

	password := userPassword
	generated := password == ""
	if generated {
		var err error
		password, err = cryptox.GeneratePassword(generatedPasswordLen)
		if err != nil {
			return err
		}
	}

	hasher, err := app.NewHasher(cfg)
	if err != nil {
		return err
	}

	db, err := app.OpenStore(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	users := &service.UserService{Users: db.Users(), Hasher: hasher}
	u, err := users.CreateUser(cmd.Context(), userName, password)
	if err != nil {
		return fmt.Errorf("create user %q: %w", userName, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "created user %s (%s)\n", u.Username, u.ID)
	if generated {
		fmt.Fprintf(out, "password: %s\n", password)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userAddCmd)
	userAddCmd.Flags().StringVarP(&userName, "username", "u", "", "Username to create")
	userAddCmd.Flags().StringVar(&userPassword, "password", "", "Password (generated when empty)")
	_ = userAddCmd.MarkFlagRequired("username")
}
