package ports

import (
	"context"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
)

// PartyInput carries client or supplier fields.
type PartyInput struct {
	Name    string
	Email   string
	Phone   *string
	Address *string
}

// PartyService is the CRUD use case for one kind of counterparty.
type PartyService interface {
	Kind() domain.PartyKind
	Create(ctx context.Context, in PartyInput) (*domain.Party, error)
	Get(ctx context.Context, id uint) (*domain.Party, error)
	List(ctx context.Context) ([]*domain.Party, error)
	Update(ctx context.Context, id uint, in PartyInput) (*domain.Party, error)
	Delete(ctx context.Context, id uint) error
}
