package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
	"github.com/cuentas/invoice-tracker/internal/core/ports"
)

const maxUsernameLen = 150

// UserService gates user writes on CapManageUsers and scopes reads to the
// caller's own row unless they hold CapViewAllUsers.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// Register creates a user. Only callers allowed to manage users may register.
func (s *UserService) Register(ctx context.Context, caller domain.Identity, in ports.RegisterUserInput) (*domain.User, error) {
	if err := s.authorize(caller, domain.CapManageUsers, "register user"); err != nil {
		return nil, err
	}

	v := validateUserFields(in.Username, in.Email, in.Role)
	if in.Password == "" {
		v.Add("password", "this field is required")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Uint("user_id", created.ID).
		Str("role", string(created.Role)).
		Str("registered_by", caller.Username).
		Msg("user registered")
	return created, nil
}

func (s *UserService) Get(ctx context.Context, caller domain.Identity, id uint) (*domain.User, error) {
	if !caller.Can(domain.CapViewAllUsers) && id != caller.UserID {
		return nil, domain.ErrNotFound
	}
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, caller domain.Identity) ([]*domain.User, error) {
	filter := ports.UserFilter{}
	if !caller.Can(domain.CapViewAllUsers) {
		filter.OnlyID = caller.UserID
	}
	return s.repo.List(ctx, filter)
}

func (s *UserService) Update(ctx context.Context, caller domain.Identity, id uint, in ports.UpdateUserInput) (*domain.User, error) {
	if err := s.authorize(caller, domain.CapManageUsers, "update user"); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateUserFields(in.Username, in.Email, in.Role).OrNil(); err != nil {
		return nil, err
	}

	user.Username = strings.TrimSpace(in.Username)
	user.Email = strings.TrimSpace(in.Email)
	user.Role = in.Role
	user.UpdatedAt = time.Now().UTC()
	if in.Password != "" {
		if user.PasswordHash, err = hashPassword(in.Password); err != nil {
			return nil, err
		}
	}

	return s.repo.Update(ctx, user)
}

func (s *UserService) Delete(ctx context.Context, caller domain.Identity, id uint) error {
	if err := s.authorize(caller, domain.CapManageUsers, "delete user"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Uint("user_id", id).Str("deleted_by", caller.Username).Msg("user deleted")
	return nil
}

// Me returns the caller's own user record.
func (s *UserService) Me(ctx context.Context, caller domain.Identity) (*domain.User, error) {
	return s.repo.FindByID(ctx, caller.UserID)
}

func (s *UserService) authorize(caller domain.Identity, c domain.Capability, action string) error {
	if caller.UserID == 0 {
		s.log.Warn().Str("action", action).Msg("unauthenticated caller rejected")
		return domain.ErrUnauthenticated
	}
	if !caller.Can(c) {
		s.log.Warn().
			Uint("user_id", caller.UserID).
			Str("username", caller.Username).
			Str("role", string(caller.Role)).
			Str("action", action).
			Msg("caller lacks capability")
		return domain.ErrForbidden
	}
	return nil
}

func validateUserFields(username, email string, role domain.Role) *domain.ValidationError {
	v := &domain.ValidationError{}
	username = strings.TrimSpace(username)
	switch {
	case username == "":
		v.Add("username", "this field is required")
	case len(username) > maxUsernameLen:
		v.Add("username", "ensure this field has no more than 150 characters")
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			v.Add("email", "enter a valid email address")
		}
	}
	if !role.Valid() {
		v.Add("role", "must be one of: Admin Accountant Manager")
	}
	return v
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Bootstrap creates an Admin without a caller. It is meant for the
// operator CLI, since registration itself requires an Admin.
func (s *UserService) Bootstrap(ctx context.Context, username, email, password string) (*domain.User, error) {
	system := domain.Identity{UserID: ^uint(0), Username: "system", Role: domain.RoleAdmin}
	return s.Register(ctx, system, ports.RegisterUserInput{
		Username: username,
		Email:    email,
		Password: password,
		Role:     domain.RoleAdmin,
	})
}
