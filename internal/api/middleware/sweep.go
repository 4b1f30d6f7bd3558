package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cuentas/invoice-tracker/internal/api/metrics"
	"github.com/cuentas/invoice-tracker/internal/core/ports"
)

// Sweep runs the overdue sweep before every request it wraps, so handlers
// always observe current invoice statuses. A failed sweep fails the request.
func Sweep(sweeper ports.Sweeper) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			n, err := sweeper.Sweep(c.Request().Context())
			metrics.SweepDuration.Observe(time.Since(start).Seconds())
			if err != nil {
				metrics.SweepsTotal.WithLabelValues("error").Inc()
				return err
			}
			metrics.SweepsTotal.WithLabelValues("ok").Inc()
			metrics.InvoicesMarkedOverdueTotal.Add(float64(n))
			return next(c)
		}
	}
}
