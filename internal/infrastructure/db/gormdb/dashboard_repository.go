package gormdb

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
)

// GormDashboardRepository computes the dashboard aggregates in SQL.
type GormDashboardRepository struct {
	db *gorm.DB
}

func NewGormDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

func (r *GormDashboardRepository) Aggregate(ctx context.Context) (*domain.DashboardMetrics, error) {
	receivable, err := r.sumByType(ctx, domain.InvoiceReceivable)
	if err != nil {
		return nil, err
	}
	payable, err := r.sumByType(ctx, domain.InvoicePayable)
	if err != nil {
		return nil, err
	}

	var overdue int64
	if err := r.db.WithContext(ctx).Model(&InvoiceModel{}).
		Where("status = ?", string(domain.StatusOverdue)).
		Count(&overdue).Error; err != nil {
		return nil, fmt.Errorf("count overdue: %w", err)
	}

	flow, err := r.monthlyFlow(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardMetrics{
		TotalReceivable: receivable,
		TotalPayable:    payable,
		OverdueCount:    overdue,
		MonthlyFlow:     flow,
	}, nil
}

func (r *GormDashboardRepository) sumByType(ctx context.Context, t domain.InvoiceType) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&InvoiceModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("type = ?", string(t)).
		Scan(&result).Error; err != nil {
		return decimal.Zero, fmt.Errorf("sum %s: %w", t, err)
	}
	return result.Total.Round(2), nil
}

// monthlyFlow groups every invoice by the calendar month of its issue date,
// regardless of year.
func (r *GormDashboardRepository) monthlyFlow(ctx context.Context) ([]domain.MonthlyTotal, error) {
	var rows []struct {
		Month int
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&InvoiceModel{}).
		Select(monthExpr(r.db) + " as month, COALESCE(SUM(amount), 0) as total").
		Group("month").
		Order("month").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("monthly flow: %w", err)
	}

	flow := make([]domain.MonthlyTotal, 0, len(rows))
	for _, row := range rows {
		flow = append(flow, domain.MonthlyTotal{Month: time.Month(row.Month), Total: row.Total.Round(2)})
	}
	return flow, nil
}

func monthExpr(db *gorm.DB) string {
	if db.Dialector.Name() == DriverSQLite {
		return "CAST(strftime('%m', issue_date) AS INTEGER)"
	}
	return "CAST(EXTRACT(MONTH FROM issue_date) AS INTEGER)"
}
