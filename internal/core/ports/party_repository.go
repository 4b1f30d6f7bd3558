package ports

import (
	"context"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
)

// PartyRepository persists one kind of counterparty (clients or suppliers).
type PartyRepository interface {
	Kind() domain.PartyKind
	Create(ctx context.Context, p *domain.Party) (*domain.Party, error)
	FindByID(ctx context.Context, id uint) (*domain.Party, error)
	List(ctx context.Context) ([]*domain.Party, error)
	Update(ctx context.Context, p *domain.Party) (*domain.Party, error)
	// Delete removes the party together with its invoices and their
	// notifications.
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}
