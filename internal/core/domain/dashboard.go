package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyTotal is the invoiced amount for one calendar month of issue date.
type MonthlyTotal struct {
	Month time.Month
	Total decimal.Decimal
}

// DashboardMetrics aggregates the invoice collection. Totals are zero, never
// absent, when nothing matches.
type DashboardMetrics struct {
	TotalReceivable decimal.Decimal
	TotalPayable    decimal.Decimal
	OverdueCount    int64
	MonthlyFlow     []MonthlyTotal
}
