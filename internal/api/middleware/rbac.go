package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
)

// RequireCapability rejects callers whose role does not grant c. It must run
// after Auth.
func RequireCapability(c domain.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id, ok := ctx.Get(IdentityKey).(domain.Identity)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if !id.Can(c) {
				return domain.ErrForbidden
			}
			return next(ctx)
		}
	}
}

// WriteRequires gates only mutating methods on c; safe methods pass through.
func WriteRequires(c domain.Capability) echo.MiddlewareFunc {
	gate := RequireCapability(c)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		gated := gate(next)
		return func(ctx echo.Context) error {
			switch ctx.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(ctx)
			}
			return gated(ctx)
		}
	}
}
