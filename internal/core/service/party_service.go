package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
	"github.com/cuentas/invoice-tracker/internal/core/ports"
)

// PartyService serves both clients and suppliers; the kind comes from the
// repository it wraps.
type PartyService struct {
	repo ports.PartyRepository
	log  zerolog.Logger
}

func NewPartyService(repo ports.PartyRepository, log zerolog.Logger) *PartyService {
	return &PartyService{repo: repo, log: log.With().Str("party", string(repo.Kind())).Logger()}
}

func (s *PartyService) Kind() domain.PartyKind { return s.repo.Kind() }

func (s *PartyService) Create(ctx context.Context, in ports.PartyInput) (*domain.Party, error) {
	p := toParty(in, s.repo.Kind())
	if err := p.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("id", created.ID).Msg("party created")
	return created, nil
}

func (s *PartyService) Get(ctx context.Context, id uint) (*domain.Party, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PartyService) List(ctx context.Context) ([]*domain.Party, error) {
	return s.repo.List(ctx)
}

func (s *PartyService) Update(ctx context.Context, id uint, in ports.PartyInput) (*domain.Party, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	p := toParty(in, s.repo.Kind())
	p.ID = id
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, p)
}

// Delete removes the party and, through the repository, its invoices.
func (s *PartyService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Uint("id", id).Msg("party deleted with its invoices")
	return nil
}

func toParty(in ports.PartyInput, kind domain.PartyKind) *domain.Party {
	return &domain.Party{
		Kind:    kind,
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   in.Phone,
		Address: in.Address,
	}
}
