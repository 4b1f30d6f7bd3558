package gormdb

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
	"github.com/cuentas/invoice-tracker/internal/core/ports"
)

// GormInvoiceRepository implements ports.InvoiceRepository using GORM.
// Every write re-validates the invoice and applies the overdue rule against
// the injected clock.
type GormInvoiceRepository struct {
	db    *gorm.DB
	clock domain.Clock
}

func NewGormInvoiceRepository(db *gorm.DB, clock domain.Clock) *GormInvoiceRepository {
	if clock == nil {
		clock = domain.UTCClock{}
	}
	return &GormInvoiceRepository{db: db, clock: clock}
}

func (r *GormInvoiceRepository) prepare(inv *domain.Invoice) (*InvoiceModel, error) {
	inv.Normalize()
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	inv.ApplyOverdueRule(r.clock.Today())
	return invoiceFromDomain(inv), nil
}

func (r *GormInvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	model, err := r.prepare(inv)
	if err != nil {
		return nil, err
	}
	model.ID = 0
	if err := r.db.WithContext(ctx).Omit("Notifications").Create(model).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(), nil
}

func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uint) (*domain.Invoice, error) {
	var model InvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(), nil
}

func (r *GormInvoiceRepository) List(ctx context.Context, filter ports.InvoiceFilter) ([]*domain.Invoice, error) {
	query := r.db.WithContext(ctx).Order("id")
	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var rows []InvoiceModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	invoices := make([]*domain.Invoice, 0, len(rows))
	for i := range rows {
		invoices = append(invoices, rows[i].ToDomain())
	}
	return invoices, nil
}

func (r *GormInvoiceRepository) Update(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	model, err := r.prepare(inv)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Model(&InvoiceModel{}).Where("id = ?", model.ID).Updates(map[string]any{
		"number":      model.Number,
		"type":        model.Type,
		"client_id":   model.ClientID,
		"supplier_id": model.SupplierID,
		"issue_date":  model.IssueDate,
		"due_date":    model.DueDate,
		"amount":      model.Amount,
		"status":      model.Status,
	})
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return model.ToDomain(), nil
}

func (r *GormInvoiceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&NotificationModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&InvoiceModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *GormInvoiceRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&InvoiceModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkOverdue flips every Pending invoice due strictly before today in one
// UPDATE statement.
func (r *GormInvoiceRepository) MarkOverdue(ctx context.Context, today time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&InvoiceModel{}).
		Where("status = ? AND due_date < ?", string(domain.StatusPending), domain.DateOf(today)).
		Update("status", string(domain.StatusOverdue))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
