package gormdb

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	db, err := Connect(ctx, Config{Driver: DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(ctx, db))

	t.Cleanup(func() { _ = Close(db) })
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func uintPtr(v uint) *uint { return &v }

func mustClient(t *testing.T, db *gorm.DB, name, email string) *domain.Party {
	t.Helper()
	p, err := NewGormClientRepository(db).Create(context.Background(), &domain.Party{Name: name, Email: email})
	require.NoError(t, err)
	return p
}

func mustSupplier(t *testing.T, db *gorm.DB, name, email string) *domain.Party {
	t.Helper()
	p, err := NewGormSupplierRepository(db).Create(context.Background(), &domain.Party{Name: name, Email: email})
	require.NoError(t, err)
	return p
}

func mustInvoice(t *testing.T, repo *GormInvoiceRepository, inv *domain.Invoice) *domain.Invoice {
	t.Helper()
	created, err := repo.Create(context.Background(), inv)
	require.NoError(t, err)
	return created
}

func receivableInvoice(number string, clientID uint, issue, due time.Time, amount string) *domain.Invoice {
	return &domain.Invoice{
		Number:    number,
		Type:      domain.InvoiceReceivable,
		ClientID:  uintPtr(clientID),
		IssueDate: issue,
		DueDate:   due,
		Amount:    decimal.RequireFromString(amount),
	}
}

func payableInvoice(number string, supplierID uint, issue, due time.Time, amount string) *domain.Invoice {
	return &domain.Invoice{
		Number:     number,
		Type:       domain.InvoicePayable,
		SupplierID: uintPtr(supplierID),
		IssueDate:  issue,
		DueDate:    due,
		Amount:     decimal.RequireFromString(amount),
	}
}
