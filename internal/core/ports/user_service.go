package ports

import (
	"context"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
)

// RegisterUserInput carries the data for creating a user.
type RegisterUserInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// UpdateUserInput replaces the mutable fields of a user. An empty Password
// keeps the current one.
type UpdateUserInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// UserService applies write gating and row visibility to the user collection.
type UserService interface {
	Register(ctx context.Context, caller domain.Identity, in RegisterUserInput) (*domain.User, error)
	Get(ctx context.Context, caller domain.Identity, id uint) (*domain.User, error)
	List(ctx context.Context, caller domain.Identity) ([]*domain.User, error)
	Update(ctx context.Context, caller domain.Identity, id uint, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, caller domain.Identity, id uint) error
	Me(ctx context.Context, caller domain.Identity) (*domain.User, error)
}
