package ports

import (
	"context"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
)

// UserFilter narrows a user listing. OnlyID == 0 means no restriction.
type UserFilter struct {
	OnlyID uint
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id uint) error
}
