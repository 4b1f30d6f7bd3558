package gormdb

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
	"github.com/cuentas/invoice-tracker/internal/core/ports"
)

func newMockInvoiceRepository(t *testing.T) (*GormInvoiceRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormInvoiceRepository(gormDB, domain.UTCClock{}), mock, mockDB
}

func TestGormInvoiceRepository_MarkOverdueIsSingleStatement(t *testing.T) {
	repo, mock, mockDB := newMockInvoiceRepository(t)
	defer mockDB.Close()

	today := date(2024, 6, 15)
	mock.ExpectExec(`UPDATE "invoices" SET "status"=\$1 WHERE status = \$2 AND due_date < \$3`).
		WithArgs("Overdue", "Pending", today).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.MarkOverdue(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormInvoiceRepository_OverdueRuleOnWrite(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	today := date(2024, 3, 10)
	repo := NewGormInvoiceRepository(db, domain.FixedClock(today))
	acme := mustClient(t, db, "Acme", "acme@example.com")

	t.Run("past due pending becomes overdue", func(t *testing.T) {
		inv := mustInvoice(t, repo, receivableInvoice("R-1", acme.ID, date(2024, 2, 1), date(2024, 3, 9), "100.00"))
		assert.Equal(t, domain.StatusOverdue, inv.Status)
	})

	t.Run("due today stays pending", func(t *testing.T) {
		inv := mustInvoice(t, repo, receivableInvoice("R-2", acme.ID, date(2024, 2, 1), today, "100.00"))
		assert.Equal(t, domain.StatusPending, inv.Status)

		found, err := repo.FindByID(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, found.Status)
		assert.True(t, found.DueDate.Equal(today))
	})

	t.Run("paid is never overridden", func(t *testing.T) {
		in := receivableInvoice("R-3", acme.ID, date(2023, 1, 1), date(2023, 2, 1), "5.00")
		in.Status = domain.StatusPaid
		inv := mustInvoice(t, repo, in)
		assert.Equal(t, domain.StatusPaid, inv.Status)
	})

	t.Run("invalid party combination is rejected", func(t *testing.T) {
		in := payableInvoice("P-1", 0, date(2024, 1, 1), date(2024, 4, 1), "1.00")
		in.SupplierID = nil
		in.ClientID = uintPtr(acme.ID)
		_, err := repo.Create(ctx, in)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("duplicate number conflicts", func(t *testing.T) {
		_, err := repo.Create(ctx, receivableInvoice("R-1", acme.ID, date(2024, 2, 1), date(2024, 5, 1), "1.00"))
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestGormInvoiceRepository_UpdateAndFilter(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormInvoiceRepository(db, domain.FixedClock(date(2024, 3, 10)))
	acme := mustClient(t, db, "Acme", "acme@example.com")
	parts := mustSupplier(t, db, "Parts", "parts@example.com")

	r1 := mustInvoice(t, repo, receivableInvoice("R-1", acme.ID, date(2024, 3, 1), date(2024, 4, 1), "100.50"))
	mustInvoice(t, repo, payableInvoice("P-1", parts.ID, date(2024, 3, 1), date(2024, 4, 1), "40.00"))

	r1.Status = domain.StatusPaid
	r1.Amount = decimal.RequireFromString("99.999")
	updated, err := repo.Update(ctx, r1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, updated.Status)

	found, err := repo.FindByID(ctx, r1.ID)
	require.NoError(t, err)
	assert.True(t, found.Amount.Equal(decimal.RequireFromString("100.00")), "got %s", found.Amount)

	payable, err := repo.List(ctx, ports.InvoiceFilter{Type: domain.InvoicePayable})
	require.NoError(t, err)
	require.Len(t, payable, 1)
	assert.Equal(t, "P-1", payable[0].Number)

	paid, err := repo.List(ctx, ports.InvoiceFilter{Status: domain.StatusPaid})
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, "R-1", paid[0].Number)

	_, err = repo.Update(ctx, &domain.Invoice{
		ID: 999, Number: "X", Type: domain.InvoicePayable, SupplierID: uintPtr(parts.ID),
		IssueDate: date(2024, 1, 1), DueDate: date(2024, 5, 1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGormInvoiceRepository_MarkOverdue(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormInvoiceRepository(db, domain.FixedClock(date(2024, 1, 1)))
	acme := mustClient(t, db, "Acme", "acme@example.com")

	a := mustInvoice(t, repo, receivableInvoice("A", acme.ID, date(2024, 1, 1), date(2024, 6, 14), "1.00"))
	b := mustInvoice(t, repo, receivableInvoice("B", acme.ID, date(2024, 1, 1), date(2024, 6, 15), "1.00"))
	paid := receivableInvoice("C", acme.ID, date(2024, 1, 1), date(2024, 5, 1), "1.00")
	paid.Status = domain.StatusPaid
	c := mustInvoice(t, repo, paid)

	n, err := repo.MarkOverdue(ctx, date(2024, 6, 15))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	for id, want := range map[uint]domain.InvoiceStatus{
		a.ID: domain.StatusOverdue,
		b.ID: domain.StatusPending,
		c.ID: domain.StatusPaid,
	} {
		got, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, got.Status, "invoice %s", got.Number)
	}

	n, err = repo.MarkOverdue(ctx, date(2024, 6, 15))
	require.NoError(t, err)
	assert.Zero(t, n)
}
