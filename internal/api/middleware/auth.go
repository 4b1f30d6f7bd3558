package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
	"github.com/cuentas/invoice-tracker/internal/core/ports"
)

// IdentityKey is the echo context key holding the caller's domain.Identity.
const IdentityKey = "identity"

// Auth validates the bearer access token and injects the caller identity
// into the context. A request without credentials fails with
// domain.ErrUnauthenticated; a malformed or expired token with
// domain.ErrInvalidToken.
func Auth(tokens ports.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return domain.ErrUnauthenticated
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return domain.ErrInvalidToken
			}

			id, err := tokens.ParseAccess(parts[1])
			if err != nil {
				return domain.ErrInvalidToken
			}

			c.Set(IdentityKey, id)
			return next(c)
		}
	}
}
