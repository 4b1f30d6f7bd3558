package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cuentas/invoice-tracker/internal/core/ports"
)

type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Metrics returns the receivable and payable totals, the overdue count and
// the monthly invoice flow.
//
// @Summary      Dashboard metrics
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Failure      403  {object}  map[string]string
// @Router       /v1/dashboard-metrics [get]
func (h *DashboardHandler) Metrics(c echo.Context) error {
	m, err := h.service.Metrics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDashboardResponse(m))
}
