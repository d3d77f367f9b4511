package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arcadehub/portal/internal/portal/domain"
	"github.com/arcadehub/portal/internal/portal/store"
	"github.com/arcadehub/portal/pkg/cryptox"
	"github.com/arcadehub/portal/pkg/slogx"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// dummyHash is verified against when the identifier is unknown, so that a
// failed lookup costs roughly the same as a failed password check.
const dummyHash = "$argon2id$v=19$m=19456,t=2,p=1$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// AuthService drives the login flow: password check, optional second factor
// hand-off, and session issuance.
type AuthService struct {
	Store     store.Store
	Sessions  *SessionService
	TwoFactor *TwoFactorService
}

// Login verifies the identifier/password pair. Unknown identifiers and wrong
// passwords both surface as ErrInvalidCredentials; callers cannot tell which.
// Accounts with a confirmed second factor get a pending result instead of a
// session.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (domain.LoginResult, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByIdentifier(ctx, identifier)
	if errors.Is(err, store.ErrNotFound) {
		cryptox.VerifyPassword(password, dummyHash)
		return domain.LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		l.Error("failed to look up user", slog.Any("error", err))
		return domain.LoginResult{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if !cryptox.VerifyPassword(password, user.PasswordHash) {
		l.Info("login rejected", slog.String("user_id", user.ID))
		return domain.LoginResult{}, ErrInvalidCredentials
	}

	if user.TwoFactorEnabled() {
		l.Info("login pending second factor", slog.String("user_id", user.ID))
		return domain.LoginResult{
			Outcome:       domain.LoginSecondFactorRequired,
			PendingUserID: user.ID,
		}, nil
	}

	sess, err := s.Sessions.Create(ctx, user.ID)
	if err != nil {
		return domain.LoginResult{}, err
	}

	l.Info("login succeeded", slog.String("user_id", user.ID))
	return domain.LoginResult{
		Outcome: domain.LoginAuthenticated,
		Token:   sess.Token,
	}, nil
}

// CompleteSecondFactor finishes a pending login by checking the TOTP code
// and, on success, issuing the session the password step withheld.
func (s *AuthService) CompleteSecondFactor(ctx context.Context, userID, code string) (domain.LoginResult, error) {
	l := slogx.FromContext(ctx)

	if err := s.TwoFactor.VerifyCode(ctx, userID, code); err != nil {
		return domain.LoginResult{}, err
	}

	sess, err := s.Sessions.Create(ctx, userID)
	if err != nil {
		return domain.LoginResult{}, err
	}

	l.Info("second factor accepted", slog.String("user_id", userID))
	return domain.LoginResult{
		Outcome: domain.LoginAuthenticated,
		Token:   sess.Token,
	}, nil
}

// Logout revokes the session. Unknown tokens are a no-op; logging out twice
// is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	err := s.Sessions.Revoke(ctx, token)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	return err
}
