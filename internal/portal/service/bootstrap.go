package service

import (
	"context"
	"log/slog"

	"github.com/arcadehub/portal/internal/portal/domain"
	"github.com/arcadehub/portal/pkg/slogx"
)

// BootstrapService seeds the very first admin account so a fresh deployment
// is not locked out of the admin surface.
type BootstrapService struct {
	Users *UserService
}

// EnsureAdmin creates the configured admin account when the user table is
// empty. A no-op on every subsequent boot.
func (s *BootstrapService) EnsureAdmin(ctx context.Context, identifier, password string) error {
	l := slogx.FromContext(ctx)

	empty, err := s.Users.Store.Users().IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	user, err := s.Users.CreateWithRole(ctx, identifier, password, domain.RoleAdmin)
	if err != nil {
		return err
	}

	l.Info("bootstrapped initial admin account", slog.String("user_id", user.ID))
	return nil
}
