package ports

import (
	"context"
	"time"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
)

// TokenPair is returned by a successful login or refresh.
type TokenPair struct {
	Access          string
	Refresh         string
	AccessExpiresAt time.Time
}

// AuthService issues, refreshes and revokes tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*TokenPair, *domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Revoke(ctx context.Context, refreshToken string) error
}

// RefreshClaims is the subset of a refresh token the auth service needs.
type RefreshClaims struct {
	ID        string
	UserID    uint
	ExpiresAt time.Time
}

// TokenManager signs and verifies tokens.
type TokenManager interface {
	Issue(user *domain.User) (*TokenPair, error)
	ParseAccess(token string) (domain.Identity, error)
	ParseRefresh(token string) (*RefreshClaims, error)
}

// RevocationList records refresh tokens that may no longer be used.
type RevocationList interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
