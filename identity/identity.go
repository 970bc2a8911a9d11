// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/cecm11deoutubro/portal/auth"
	"github.com/cecm11deoutubro/portal/models"
)

// Store is the user persistence the service needs. *store.Store implements it.
type Store interface {
	InsertUser(ctx context.Context, u models.User) error
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Service registers and authenticates users.
type Service struct {
	store         Store
	studentSuffix string
	logger        *slog.Logger

	// HashCost is the bcrypt cost for new credentials.
	HashCost int
}

// NewService creates a Service. Logins whose secret ends with studentSuffix
// may self-register as students; an empty suffix disables that.
func NewService(store Store, studentSuffix string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:         store,
		studentSuffix: studentSuffix,
		logger:        logger.With("module", "identity"),
		HashCost:      bcrypt.DefaultCost,
	}
}

// Register creates a user with the given role.
func (s *Service) Register(ctx context.Context, username, secret string, role models.Role, now time.Time) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.User{}, models.Invalid("username is required")
	}
	if secret == "" {
		return models.User{}, models.Invalid("password is required")
	}
	if !role.Valid() {
		return models.User{}, models.Invalid("unknown role %q", role)
	}

	_, err := s.store.GetUserByUsername(ctx, username)
	if err == nil {
		return models.User{}, fmt.Errorf("user %q: %w", username, models.ErrDuplicateUsername)
	}
	if !errors.Is(err, models.ErrNotFound) {
		return models.User{}, err
	}

	hash, err := auth.HashPassword(secret, s.HashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return models.User{}, models.Invalid("password must be at most 72 bytes")
	}
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           auth.NewID(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
	}
	if err := s.store.InsertUser(ctx, user); err != nil {
		return models.User{}, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", username, "role", role)
	return user, nil
}

// Authenticate returns the user whose credential matches secret.
// Unknown usernames and wrong secrets both yield models.ErrAuthFailure.
func (s *Service) Authenticate(ctx context.Context, username, secret string) (models.User, error) {
	user, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, models.ErrNotFound) {
		return models.User{}, models.ErrAuthFailure
	}
	if err != nil {
		return models.User{}, err
	}

	if !auth.CheckPassword(user.PasswordHash, secret) {
		return models.User{}, models.ErrAuthFailure
	}
	return user, nil
}

// IsStudentCredential reports whether secret is an institutional student
// e-mail address, which allows self-registration on first login.
func (s *Service) IsStudentCredential(secret string) bool {
	if s.studentSuffix == "" {
		return false
	}
	return len(secret) > len(s.studentSuffix) && strings.HasSuffix(secret, s.studentSuffix)
}

// Login authenticates the user. An unknown username presenting a student
// credential is first registered as a student, and registered is true.
//
// The credential is the e-mail address itself, which anyone who knows the
// address can present.
func (s *Service) Login(ctx context.Context, username, secret string, now time.Time) (user models.User, registered bool, err error) {
	if s.IsStudentCredential(secret) {
		_, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(username))
		switch {
		case errors.Is(err, models.ErrNotFound):
			if _, err := s.Register(ctx, username, secret, models.RoleStudent, now); err != nil {
				if errors.Is(err, models.ErrValidation) {
					return models.User{}, false, models.ErrAuthFailure
				}
				// Lost a race with a concurrent registration of the same name.
				if !errors.Is(err, models.ErrDuplicateUsername) {
					return models.User{}, false, err
				}
			} else {
				registered = true
			}
		case err != nil:
			return models.User{}, false, err
		}
	}

	user, err = s.Authenticate(ctx, username, secret)
	if err != nil {
		s.logger.Info("login failed", "username", username)
		return models.User{}, false, err
	}
	return user, registered, nil
}

// EnsureAdmin creates an administrator with the given credentials unless the
// username already exists.
func (s *Service) EnsureAdmin(ctx context.Context, username, secret string, now time.Time) (bool, error) {
	_, err := s.Register(ctx, username, secret, models.RoleAdmin, now)
	if errors.Is(err, models.ErrDuplicateUsername) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UsesPassword reports whether the user exists and secret is their current
// credential.
func (s *Service) UsesPassword(ctx context.Context, username, secret string) (bool, error) {
	_, err := s.Authenticate(ctx, username, secret)
	if errors.Is(err, models.ErrAuthFailure) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Get returns the user with the given id, or models.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (models.User, error) {
	return s.store.GetUserByID(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}
