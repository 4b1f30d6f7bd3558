package gormdb

import (
	"context"

	"gorm.io/gorm"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
)

// GormNotificationRepository implements ports.NotificationRepository. Reads
// join the invoice so callers get its number without a second lookup.
type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

type notificationRow struct {
	NotificationModel `gorm:"embedded"`
	InvoiceNumber     string
}

func (r *GormNotificationRepository) withInvoice(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&NotificationModel{}).
		Select("notifications.*, invoices.number as invoice_number").
		Joins("JOIN invoices ON invoices.id = notifications.invoice_id")
}

func (r *GormNotificationRepository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	model := notificationFromDomain(n)
	model.ID = 0
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, translate(err)
	}
	return r.FindByID(ctx, model.ID)
}

func (r *GormNotificationRepository) FindByID(ctx context.Context, id uint) (*domain.Notification, error) {
	var rows []notificationRow
	if err := r.withInvoice(ctx).Where("notifications.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return rows[0].ToDomain(rows[0].InvoiceNumber), nil
}

func (r *GormNotificationRepository) List(ctx context.Context) ([]*domain.Notification, error) {
	var rows []notificationRow
	if err := r.withInvoice(ctx).Order("notifications.id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Notification, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain(rows[i].InvoiceNumber))
	}
	return out, nil
}

func (r *GormNotificationRepository) Update(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	result := r.db.WithContext(ctx).Model(&NotificationModel{}).Where("id = ?", n.ID).Updates(map[string]any{
		"invoice_id": n.InvoiceID,
		"message":    n.Message,
		"sent":       n.Sent,
	})
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.FindByID(ctx, n.ID)
}

func (r *GormNotificationRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&NotificationModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormNotificationRepository) MarkSent(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&NotificationModel{}).Where("id = ?", id).Update("sent", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
