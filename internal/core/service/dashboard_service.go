package service

import (
	"context"
	"fmt"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
	"github.com/cuentas/invoice-tracker/internal/core/ports"
)

type DashboardService struct {
	repo ports.DashboardRepository
}

func NewDashboardService(repo ports.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// Metrics returns the dashboard aggregates. Callers run the overdue sweep
// first so the overdue count is current.
func (s *DashboardService) Metrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	m, err := s.repo.Aggregate(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard metrics: %w", err)
	}
	if m.MonthlyFlow == nil {
		m.MonthlyFlow = []domain.MonthlyTotal{}
	}
	return m, nil
}
