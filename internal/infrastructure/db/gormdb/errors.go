package gormdb

import (
	"errors"

	"gorm.io/gorm"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
)

// translate maps gorm errors onto domain sentinels. Other errors pass through.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.ErrValidation
	}
	return err
}
