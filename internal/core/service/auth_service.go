package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
	"github.com/cuentas/invoice-tracker/internal/core/ports"
)

// AuthService implements credential login and refresh-token handling.
type AuthService struct {
	users   ports.UserRepository
	tokens  ports.TokenManager
	revoked ports.RevocationList
	log     zerolog.Logger
}

// NewAuthService wires the auth use cases. A nil revocation list disables
// refresh-token revocation.
func NewAuthService(users ports.UserRepository, tokens ports.TokenManager, revoked ports.RevocationList, log zerolog.Logger) *AuthService {
	if revoked == nil {
		revoked = noopRevocations{}
	}
	return &AuthService{users: users, tokens: tokens, revoked: revoked, log: log}
}

// Login verifies the credentials and issues a token pair whose access token
// carries the user's role.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, *domain.User, error) {
	if username == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Warn().Str("username", username).Msg("login rejected")
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.tokens.Issue(user)
	if err != nil {
		return nil, nil, fmt.Errorf("login: issue token: %w", err)
	}

	s.log.Info().Uint("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	return pair, user, nil
}

// Refresh exchanges a valid refresh token for a new pair. The old refresh
// token is revoked so it cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	claims, err := s.checkRefresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}

	pair, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("refresh: issue token: %w", err)
	}

	if err := s.revoked.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt)); err != nil {
		s.log.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to revoke rotated refresh token")
	}
	return pair, nil
}

// Revoke blacklists a refresh token until it would have expired anyway.
func (s *AuthService) Revoke(ctx context.Context, refreshToken string) error {
	claims, err := s.checkRefresh(ctx, refreshToken)
	if err != nil {
		return err
	}
	if err := s.revoked.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt)); err != nil {
		return fmt.Errorf("revoke: %w", err)
	}
	s.log.Info().Uint("user_id", claims.UserID).Msg("refresh token revoked")
	return nil
}

func (s *AuthService) checkRefresh(ctx context.Context, refreshToken string) (*ports.RefreshClaims, error) {
	if refreshToken == "" {
		return nil, domain.ErrInvalidToken
	}
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}
	return claims, nil
}

type noopRevocations struct{}

func (noopRevocations) Revoke(context.Context, string, time.Duration) error { return nil }
func (noopRevocations) IsRevoked(context.Context, string) (bool, error)     { return false, nil }
