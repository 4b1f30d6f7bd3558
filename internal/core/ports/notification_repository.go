package ports

import (
	"context"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
)

// NotificationRepository defines persistence operations for notifications.
// Returned notifications carry the number of their invoice.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	FindByID(ctx context.Context, id uint) (*domain.Notification, error)
	List(ctx context.Context) ([]*domain.Notification, error)
	Update(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	Delete(ctx context.Context, id uint) error
	MarkSent(ctx context.Context, id uint) error
}
