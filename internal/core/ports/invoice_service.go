package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
)

// InvoiceInput carries every writable invoice field.
type InvoiceInput struct {
	Number     string
	Type       domain.InvoiceType
	ClientID   *uint
	SupplierID *uint
	IssueDate  time.Time
	DueDate    time.Time
	Amount     decimal.Decimal
	Status     domain.InvoiceStatus
}

// InvoiceService is the CRUD use case for invoices.
type InvoiceService interface {
	Create(ctx context.Context, in InvoiceInput) (*domain.Invoice, error)
	Get(ctx context.Context, id uint) (*domain.Invoice, error)
	List(ctx context.Context, filter InvoiceFilter) ([]*domain.Invoice, error)
	Update(ctx context.Context, id uint, in InvoiceInput) (*domain.Invoice, error)
	Delete(ctx context.Context, id uint) error
}

// Sweeper runs the bulk overdue correction.
type Sweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

// DashboardService computes the dashboard metrics.
type DashboardService interface {
	Metrics(ctx context.Context) (*domain.DashboardMetrics, error)
}
