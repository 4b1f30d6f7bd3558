package ports

import (
	"context"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
)

// NotificationInput carries the writable notification fields.
type NotificationInput struct {
	InvoiceID uint
	Message   string
	Sent      bool
}

// NotificationService is the CRUD use case for notifications plus delivery.
type NotificationService interface {
	Create(ctx context.Context, in NotificationInput) (*domain.Notification, error)
	Get(ctx context.Context, id uint) (*domain.Notification, error)
	List(ctx context.Context) ([]*domain.Notification, error)
	Update(ctx context.Context, id uint, in NotificationInput) (*domain.Notification, error)
	Delete(ctx context.Context, id uint) error

	// Deliver hands the notification to the notifier and marks it sent.
	Deliver(ctx context.Context, id uint) error
}

// Notifier delivers a notification to its audience.
type Notifier interface {
	Notify(ctx context.Context, n *domain.Notification) error
}
