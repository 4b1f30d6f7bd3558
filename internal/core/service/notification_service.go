package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
	"github.com/cuentas/invoice-tracker/internal/core/ports"
)

type NotificationService struct {
	repo     ports.NotificationRepository
	invoices ports.InvoiceRepository
	notifier ports.Notifier
	now      func() time.Time
	log      zerolog.Logger
}

func NewNotificationService(
	repo ports.NotificationRepository,
	invoices ports.InvoiceRepository,
	notifier ports.Notifier,
	log zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		repo:     repo,
		invoices: invoices,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
		log:      log,
	}
}

func (s *NotificationService) Create(ctx context.Context, in ports.NotificationInput) (*domain.Notification, error) {
	n := &domain.Notification{
		InvoiceID: in.InvoiceID,
		Message:   strings.TrimSpace(in.Message),
		Sent:      in.Sent,
		SentAt:    s.now(),
	}
	if err := s.check(ctx, n); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, n)
}

func (s *NotificationService) Get(ctx context.Context, id uint) (*domain.Notification, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *NotificationService) List(ctx context.Context) ([]*domain.Notification, error) {
	return s.repo.List(ctx)
}

// Update replaces invoice, message and sent flag; sent_at keeps its
// creation value.
func (s *NotificationService) Update(ctx context.Context, id uint, in ports.NotificationInput) (*domain.Notification, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	n.InvoiceID = in.InvoiceID
	n.Message = strings.TrimSpace(in.Message)
	n.Sent = in.Sent
	if err := s.check(ctx, n); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, n)
}

func (s *NotificationService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// Deliver is a no-op for notifications already sent.
func (s *NotificationService) Deliver(ctx context.Context, id uint) error {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("deliver notification %d: %w", id, err)
	}
	if n.Sent {
		s.log.Debug().Uint("id", id).Msg("notification already sent")
		return nil
	}

	if err := s.notifier.Notify(ctx, n); err != nil {
		return fmt.Errorf("deliver notification %d: %w", id, err)
	}
	if err := s.repo.MarkSent(ctx, id); err != nil {
		return fmt.Errorf("deliver notification %d: mark sent: %w", id, err)
	}

	s.log.Info().Uint("id", id).Str("invoice", n.InvoiceNumber).Msg("notification delivered")
	return nil
}

func (s *NotificationService) check(ctx context.Context, n *domain.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}
	exists, err := s.invoices.Exists(ctx, n.InvoiceID)
	if err != nil {
		return fmt.Errorf("check invoice: %w", err)
	}
	if !exists {
		return domain.NewValidationError("invoice_id", fmt.Sprintf("invalid pk %d - object does not exist", n.InvoiceID))
	}
	return nil
}
