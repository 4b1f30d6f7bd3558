package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cuentas/invoice-tracker/internal/core/service"
	"github.com/cuentas/invoice-tracker/internal/infrastructure/db/gormdb"
)

var adminOpts struct {
	username string
	email    string
	password string
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an Admin user",
	Long: `create-admin bootstraps an Admin account. Registration through the API
requires an Admin, so the first one has to be created here.

The password is read from --password or, when omitted, from the
ADMIN_PASSWORD environment variable.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		password := adminOpts.password
		if password == "" {
			password = os.Getenv("ADMIN_PASSWORD")
		}
		if password == "" {
			return errors.New("a password is required (--password or ADMIN_PASSWORD)")
		}

		db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = gormdb.Close(db) }()

		users := service.NewUserService(gormdb.NewGormUserRepository(db), log)
		user, err := users.Bootstrap(cmd.Context(), adminOpts.username, adminOpts.email, password)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "admin %q created with id %d\n", user.Username, user.ID)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminOpts.username, "username", "admin", "username of the new Admin")
	createAdminCmd.Flags().StringVar(&adminOpts.email, "email", "", "email of the new Admin")
	createAdminCmd.Flags().StringVar(&adminOpts.password, "password", "", "password of the new Admin")
}
