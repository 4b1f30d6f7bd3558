package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
	"github.com/cuentas/invoice-tracker/internal/core/service"
	"github.com/cuentas/invoice-tracker/internal/infrastructure/db/gormdb"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Mark every Pending invoice past its due date as Overdue",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = gormdb.Close(db) }()

		clock := domain.UTCClock{}
		sweeper := service.NewSweepService(gormdb.NewGormInvoiceRepository(db, clock), clock, log)
		n, err := sweeper.Sweep(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d invoice(s) marked overdue\n", n)
		return nil
	},
}
