package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
	"github.com/cuentas/invoice-tracker/internal/core/ports"
)

const issuer = "invoice-tracker"

// TokenType separates access from refresh tokens so neither can stand in
// for the other.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var errWrongTokenType = errors.New("wrong token type")

// Claims are the custom JWT claims carried by both token types. Role and
// Username are only set on access tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Role      string    `json:"role,omitempty"`
	TokenType TokenType `json:"token_type"`
}

// JWTManager signs and verifies HS256 tokens.
type JWTManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewJWTManager(secret string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (m *JWTManager) Issue(user *domain.User) (*ports.TokenPair, error) {
	now := m.now()
	subject := strconv.FormatUint(uint64(user.ID), 10)

	access, err := m.sign(&Claims{
		RegisteredClaims: m.registered(subject, now, m.accessTTL),
		UserID:           user.ID,
		Username:         user.Username,
		Role:             string(user.Role),
		TokenType:        TokenTypeAccess,
	})
	if err != nil {
		return nil, err
	}

	refresh, err := m.sign(&Claims{
		RegisteredClaims: m.registered(subject, now, m.refreshTTL),
		UserID:           user.ID,
		TokenType:        TokenTypeRefresh,
	})
	if err != nil {
		return nil, err
	}

	return &ports.TokenPair{
		Access:          access,
		Refresh:         refresh,
		AccessExpiresAt: now.Add(m.accessTTL),
	}, nil
}

// ParseAccess validates an access token and returns the caller identity.
func (m *JWTManager) ParseAccess(token string) (domain.Identity, error) {
	claims, err := m.parse(token, TokenTypeAccess)
	if err != nil {
		return domain.Identity{}, err
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil || claims.UserID == 0 {
		return domain.Identity{}, domain.ErrInvalidToken
	}
	return domain.Identity{UserID: claims.UserID, Username: claims.Username, Role: role}, nil
}

func (m *JWTManager) ParseRefresh(token string) (*ports.RefreshClaims, error) {
	claims, err := m.parse(token, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	return &ports.RefreshClaims{
		ID:        claims.ID,
		UserID:    claims.UserID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (m *JWTManager) registered(subject string, now time.Time, ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (m *JWTManager) sign(claims *Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *JWTManager) parse(token string, want TokenType) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.TokenType != want {
		return nil, errors.Join(domain.ErrInvalidToken, errWrongTokenType)
	}
	return claims, nil
}
