package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arcadehub/portal/internal/portal/domain"
	"github.com/arcadehub/portal/internal/portal/store"
	"github.com/arcadehub/portal/pkg/cryptox"
	"github.com/arcadehub/portal/pkg/idx"
	"github.com/arcadehub/portal/pkg/slogx"
)

var (
	ErrIdentifierTaken = errors.New("identifier already taken")
	ErrUserNotFound    = errors.New("user not found")
)

// UserUpdate carries the caller-facing partial update. Password arrives in
// the clear here and is hashed before it reaches the store.
type UserUpdate struct {
	Identifier *string
	Password   *string
	Role       *domain.Role
}

// UserService owns account lifecycle: registration, profile updates, and
// removal.
type UserService struct {
	Store    store.Store
	Sessions *SessionService
}

// Register creates a new account with the default user role.
func (s *UserService) Register(ctx context.Context, identifier, password string) (domain.User, error) {
	return s.create(ctx, identifier, password, domain.RoleUser)
}

// CreateWithRole is the admin-facing variant of Register.
func (s *UserService) CreateWithRole(ctx context.Context, identifier, password string, role domain.Role) (domain.User, error) {
	return s.create(ctx, identifier, password, role)
}

func (s *UserService) create(ctx context.Context, identifier, password string, role domain.Role) (domain.User, error) {
	l := slogx.FromContext(ctx)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		l.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Identifier:   identifier,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.Users().CreateUser(ctx, user)
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.User{}, ErrIdentifierTaken
	}
	if err != nil {
		l.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	l.Info("user created", slog.String("user_id", user.ID), slog.String("role", string(role)))
	return user, nil
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return user, nil
}

// List returns all users, oldest first.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return users, nil
}

// Update applies a partial update. A password change hashes the new password
// and revokes every other session the user holds.
func (s *UserService) Update(ctx context.Context, userID string, upd UserUpdate) (domain.User, error) {
	patch := domain.UserPatch{
		Identifier: upd.Identifier,
		Role:       upd.Role,
	}
	if upd.Password != nil {
		hash, err := cryptox.HashPassword(*upd.Password)
		if err != nil {
			return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	user, err := s.Store.Users().UpdateUser(ctx, userID, patch)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.User{}, ErrIdentifierTaken
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if upd.Password != nil {
		if err := s.Sessions.RevokeAllForUser(ctx, userID); err != nil {
			slogx.FromContext(ctx).Error("failed to revoke sessions after password change",
				slog.String("user_id", userID), slog.Any("error", err))
		}
	}
	return user, nil
}

// Delete removes the account; sessions go with it via the schema cascade.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	err := s.Store.Users().DeleteUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	slogx.FromContext(ctx).Info("user deleted", slog.String("user_id", userID))
	return nil
}
