package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arcadehub/portal/internal/portal/domain"
)

func newAuthService(t *testing.T) (*AuthService, *TwoFactorService) {
	t.Helper()

	st := newTestStore(t)
	sessions := &SessionService{Store: st}
	twoFactor := &TwoFactorService{Store: st, Issuer: "arcade-portal"}
	return &AuthService{
		Store:     st,
		Sessions:  sessions,
		TwoFactor: twoFactor,
	}, twoFactor
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)
	alice := seedUser(t, svc.Store, "alice", "pw1", domain.RoleUser)

	t.Run("correct credentials issue a session", func(t *testing.T) {
		result, err := svc.Login(ctx, "alice", "pw1")
		require.NoError(t, err)
		require.Equal(t, domain.LoginAuthenticated, result.Outcome)
		require.NotEmpty(t, result.Token)

		sess, err := svc.Sessions.Lookup(ctx, result.Token)
		require.NoError(t, err)
		require.Equal(t, alice.ID, sess.UserID)
	})

	t.Run("two logins issue distinct sessions", func(t *testing.T) {
		r1, err := svc.Login(ctx, "alice", "pw1")
		require.NoError(t, err)
		r2, err := svc.Login(ctx, "alice", "pw1")
		require.NoError(t, err)
		require.NotEqual(t, r1.Token, r2.Token)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		_, badPassErr := svc.Login(ctx, "alice", "wrong")
		_, unknownErr := svc.Login(ctx, "nobody", "pw1")

		require.ErrorIs(t, badPassErr, ErrInvalidCredentials)
		require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
		require.Equal(t, badPassErr.Error(), unknownErr.Error())
	})
}

func TestLoginWithSecondFactor(t *testing.T) {
	ctx := context.Background()
	svc, twoFactor := newAuthService(t)
	alice := seedUser(t, svc.Store, "alice", "pw1", domain.RoleUser)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	twoFactor.Now = func() time.Time { return base }

	enrollment, err := twoFactor.BeginEnrollment(ctx, alice.ID)
	require.NoError(t, err)
	require.NoError(t, twoFactor.ConfirmEnrollment(ctx, alice.ID, codeAt(t, enrollment.Secret, base)))

	t.Run("password alone yields a pending result, no session", func(t *testing.T) {
		result, err := svc.Login(ctx, "alice", "pw1")
		require.NoError(t, err)
		require.Equal(t, domain.LoginSecondFactorRequired, result.Outcome)
		require.Empty(t, result.Token)
		require.Equal(t, alice.ID, result.PendingUserID)
	})

	t.Run("wrong password still fails before the second factor", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong code does not complete the login", func(t *testing.T) {
		_, err := svc.CompleteSecondFactor(ctx, alice.ID, "000000")
		require.ErrorIs(t, err, ErrInvalidSecondFactorCode)
	})

	t.Run("correct code completes the login", func(t *testing.T) {
		result, err := svc.CompleteSecondFactor(ctx, alice.ID, codeAt(t, enrollment.Secret, base))
		require.NoError(t, err)
		require.Equal(t, domain.LoginAuthenticated, result.Outcome)
		require.NotEmpty(t, result.Token)

		sess, err := svc.Sessions.Lookup(ctx, result.Token)
		require.NoError(t, err)
		require.Equal(t, alice.ID, sess.UserID)
	})

	t.Run("disabling the factor restores single-step login", func(t *testing.T) {
		require.NoError(t, twoFactor.Disable(ctx, alice.ID))

		result, err := svc.Login(ctx, "alice", "pw1")
		require.NoError(t, err)
		require.Equal(t, domain.LoginAuthenticated, result.Outcome)
		require.NotEmpty(t, result.Token)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)
	seedUser(t, svc.Store, "alice", "pw1", domain.RoleUser)

	result, err := svc.Login(ctx, "alice", "pw1")
	require.NoError(t, err)

	t.Run("revokes the session", func(t *testing.T) {
		require.NoError(t, svc.Logout(ctx, result.Token))

		_, err := svc.Sessions.Lookup(ctx, result.Token)
		require.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("idempotent for unknown tokens", func(t *testing.T) {
		require.NoError(t, svc.Logout(ctx, result.Token))
		require.NoError(t, svc.Logout(ctx, "never-issued"))
	})
}
