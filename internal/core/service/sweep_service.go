package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
	"github.com/cuentas/invoice-tracker/internal/core/ports"
)

// SweepService flags every Pending invoice past its due date as Overdue.
// Running it repeatedly is safe: a second run matches no rows.
type SweepService struct {
	invoices ports.InvoiceRepository
	clock    domain.Clock
	log      zerolog.Logger
}

func NewSweepService(invoices ports.InvoiceRepository, clock domain.Clock, log zerolog.Logger) *SweepService {
	if clock == nil {
		clock = domain.UTCClock{}
	}
	return &SweepService{invoices: invoices, clock: clock, log: log}
}

// Sweep returns the number of invoices moved to Overdue.
func (s *SweepService) Sweep(ctx context.Context) (int64, error) {
	today := s.clock.Today()

	n, err := s.invoices.MarkOverdue(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("overdue sweep: %w", err)
	}
	if n > 0 {
		s.log.Info().Int64("invoices", n).Str("today", today.Format(domain.DateLayout)).Msg("invoices marked overdue")
	}
	return n, nil
}
