package gormdb

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
)

// GormPartyRepository persists one kind of counterparty. Clients and
// suppliers share a shape but live in their own tables.
type GormPartyRepository struct {
	db       *gorm.DB
	kind     domain.PartyKind
	table    string
	fkColumn string
}

func NewGormClientRepository(db *gorm.DB) *GormPartyRepository {
	return &GormPartyRepository{db: db, kind: domain.PartyClient, table: "clients", fkColumn: "client_id"}
}

func NewGormSupplierRepository(db *gorm.DB) *GormPartyRepository {
	return &GormPartyRepository{db: db, kind: domain.PartySupplier, table: "suppliers", fkColumn: "supplier_id"}
}

func (r *GormPartyRepository) Kind() domain.PartyKind { return r.kind }

func (r *GormPartyRepository) Create(ctx context.Context, p *domain.Party) (*domain.Party, error) {
	fields := partyFieldsFromDomain(p)
	fields.ID = 0
	if err := r.db.WithContext(ctx).Table(r.table).Create(&fields).Error; err != nil {
		return nil, translate(err)
	}
	return fields.toDomain(r.kind), nil
}

func (r *GormPartyRepository) FindByID(ctx context.Context, id uint) (*domain.Party, error) {
	var fields PartyFields
	if err := r.db.WithContext(ctx).Table(r.table).Where("id = ?", id).First(&fields).Error; err != nil {
		return nil, translate(err)
	}
	return fields.toDomain(r.kind), nil
}

func (r *GormPartyRepository) List(ctx context.Context) ([]*domain.Party, error) {
	var rows []PartyFields
	if err := r.db.WithContext(ctx).Table(r.table).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	parties := make([]*domain.Party, 0, len(rows))
	for i := range rows {
		parties = append(parties, rows[i].toDomain(r.kind))
	}
	return parties, nil
}

func (r *GormPartyRepository) Update(ctx context.Context, p *domain.Party) (*domain.Party, error) {
	result := r.db.WithContext(ctx).Table(r.table).Where("id = ?", p.ID).Updates(map[string]any{
		"name":    p.Name,
		"email":   p.Email,
		"phone":   p.Phone,
		"address": p.Address,
	})
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.FindByID(ctx, p.ID)
}

// Delete removes the party, its invoices and their notifications in one
// transaction. The foreign keys cascade as well; deleting explicitly keeps
// the behaviour independent of the driver's constraint support.
func (r *GormPartyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoiceIDs := tx.Model(&InvoiceModel{}).Select("id").Where(r.fkColumn+" = ?", id)

		if err := tx.Where("invoice_id IN (?)", invoiceIDs).Delete(&NotificationModel{}).Error; err != nil {
			return fmt.Errorf("delete notifications of %s %d: %w", r.kind, id, err)
		}
		if err := tx.Where(r.fkColumn+" = ?", id).Delete(&InvoiceModel{}).Error; err != nil {
			return fmt.Errorf("delete invoices of %s %d: %w", r.kind, id, err)
		}

		result := tx.Table(r.table).Where("id = ?", id).Delete(&PartyFields{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *GormPartyRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Table(r.table).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
