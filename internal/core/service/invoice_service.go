package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
	"github.com/cuentas/invoice-tracker/internal/core/ports"
)

type InvoiceService struct {
	invoices  ports.InvoiceRepository
	clients   ports.PartyRepository
	suppliers ports.PartyRepository
	log       zerolog.Logger
}

func NewInvoiceService(invoices ports.InvoiceRepository, clients, suppliers ports.PartyRepository, log zerolog.Logger) *InvoiceService {
	return &InvoiceService{invoices: invoices, clients: clients, suppliers: suppliers, log: log}
}

// Create validates the invoice, checks that its counterparty exists and
// persists it. The repository applies the overdue rule on write.
func (s *InvoiceService) Create(ctx context.Context, in ports.InvoiceInput) (*domain.Invoice, error) {
	inv := toInvoice(in)
	if err := s.check(ctx, inv); err != nil {
		return nil, err
	}

	created, err := s.invoices.Create(ctx, inv)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Uint("id", created.ID).
		Str("number", created.Number).
		Str("type", string(created.Type)).
		Str("status", string(created.Status)).
		Msg("invoice created")
	return created, nil
}

func (s *InvoiceService) Get(ctx context.Context, id uint) (*domain.Invoice, error) {
	return s.invoices.FindByID(ctx, id)
}

func (s *InvoiceService) List(ctx context.Context, filter ports.InvoiceFilter) ([]*domain.Invoice, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, domain.NewValidationError("type", "must be one of: Receivable Payable")
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.NewValidationError("status", "must be one of: Paid Pending Overdue")
	}
	return s.invoices.List(ctx, filter)
}

func (s *InvoiceService) Update(ctx context.Context, id uint, in ports.InvoiceInput) (*domain.Invoice, error) {
	if _, err := s.invoices.FindByID(ctx, id); err != nil {
		return nil, err
	}

	inv := toInvoice(in)
	inv.ID = id
	if err := s.check(ctx, inv); err != nil {
		return nil, err
	}

	updated, err := s.invoices.Update(ctx, inv)
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("id", id).Str("status", string(updated.Status)).Msg("invoice updated")
	return updated, nil
}

func (s *InvoiceService) Delete(ctx context.Context, id uint) error {
	return s.invoices.Delete(ctx, id)
}

func (s *InvoiceService) check(ctx context.Context, inv *domain.Invoice) error {
	if err := inv.Validate(); err != nil {
		return err
	}

	kind, partyID, ok := inv.PartyID()
	if !ok {
		return nil
	}
	repo, field := s.clients, "client_id"
	if kind == domain.PartySupplier {
		repo, field = s.suppliers, "supplier_id"
	}

	exists, err := repo.Exists(ctx, partyID)
	if err != nil {
		return fmt.Errorf("check %s: %w", kind, err)
	}
	if !exists {
		return domain.NewValidationError(field, fmt.Sprintf("invalid pk %d - object does not exist", partyID))
	}
	return nil
}

func toInvoice(in ports.InvoiceInput) *domain.Invoice {
	inv := &domain.Invoice{
		Number:     in.Number,
		Type:       in.Type,
		ClientID:   in.ClientID,
		SupplierID: in.SupplierID,
		IssueDate:  in.IssueDate,
		DueDate:    in.DueDate,
		Amount:     in.Amount,
		Status:     in.Status,
	}
	inv.Normalize()
	return inv
}
