package ports

import (
	"context"
	"time"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
)

// InvoiceFilter carries the optional list filters. Zero values mean "any".
type InvoiceFilter struct {
	Type   domain.InvoiceType
	Status domain.InvoiceStatus
}

// InvoiceRepository defines persistence operations for invoices. Create and
// Update validate the invoice and apply the overdue rule before writing.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	FindByID(ctx context.Context, id uint) (*domain.Invoice, error)
	List(ctx context.Context, filter InvoiceFilter) ([]*domain.Invoice, error)
	Update(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)

	// MarkOverdue flips every Pending invoice whose due date is before today
	// to Overdue in a single statement and returns the number of rows changed.
	MarkOverdue(ctx context.Context, today time.Time) (int64, error)
}

// DashboardRepository computes the aggregate invoice metrics.
type DashboardRepository interface {
	Aggregate(ctx context.Context) (*domain.DashboardMetrics, error)
}
