package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cuentas/invoice-tracker/internal/infrastructure/db/gormdb"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = gormdb.Close(db) }()

		if err := gormdb.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		log.Info().Msg("schema migrated")
		return nil
	},
}
