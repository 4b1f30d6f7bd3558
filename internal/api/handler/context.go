package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cuentas/invoice-tracker/internal/api/middleware"
	"github.com/cuentas/invoice-tracker/internal/core/domain"
)

// Identity returns the caller injected by the Auth middleware.
func Identity(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(middleware.IdentityKey).(domain.Identity)
	return id, ok && id.UserID != 0
}

// ctxIdentity is the fast-fail variant used by handlers that need a caller.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := Identity(c)
	if !ok {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return id, nil
}

// pathID parses the :id parameter. A non-numeric id cannot match a row, so it
// is reported as not found.
func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ErrNotFound
	}
	return uint(id), nil
}
