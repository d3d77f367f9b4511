package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arcadehub/portal/internal/portal/domain"
)

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := seedUser(t, st, "alice", "pw1", domain.RoleUser)

	svc := &SessionService{Store: st}

	sess, err := svc.Create(ctx, user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)
	require.Equal(t, user.ID, sess.UserID)
	require.Equal(t, DefaultSessionTTL, sess.ExpiresAt.Sub(sess.CreatedAt))

	t.Run("lookup returns the live session", func(t *testing.T) {
		got, err := svc.Lookup(ctx, sess.Token)
		require.NoError(t, err)
		require.Equal(t, sess.Token, got.Token)
		require.Equal(t, user.ID, got.UserID)
	})

	t.Run("unknown token reports not found", func(t *testing.T) {
		_, err := svc.Lookup(ctx, "no-such-token")
		require.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("revoke takes effect immediately", func(t *testing.T) {
		require.NoError(t, svc.Revoke(ctx, sess.Token))

		_, err := svc.Lookup(ctx, sess.Token)
		require.ErrorIs(t, err, ErrSessionNotFound)

		require.ErrorIs(t, svc.Revoke(ctx, sess.Token), ErrSessionNotFound)
	})
}

func TestSessionExpiryBoundary(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := seedUser(t, st, "alice", "pw1", domain.RoleUser)

	base := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	svc := &SessionService{
		Store: st,
		TTL:   time.Hour,
		Now:   func() time.Time { return now },
	}

	sess, err := svc.Create(ctx, user.ID)
	require.NoError(t, err)

	t.Run("valid just before expiry", func(t *testing.T) {
		now = base.Add(time.Hour - time.Second)
		_, err := svc.Lookup(ctx, sess.Token)
		require.NoError(t, err)
	})

	t.Run("expired exactly at the deadline", func(t *testing.T) {
		now = base.Add(time.Hour)
		_, err := svc.Lookup(ctx, sess.Token)
		require.ErrorIs(t, err, ErrSessionExpired)
	})

	t.Run("expired session was lazily evicted", func(t *testing.T) {
		_, err := svc.Lookup(ctx, sess.Token)
		require.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestRevokeAllForUser(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	alice := seedUser(t, st, "alice", "pw1", domain.RoleUser)
	bob := seedUser(t, st, "bob", "pw2", domain.RoleUser)

	svc := &SessionService{Store: st}

	s1, err := svc.Create(ctx, alice.ID)
	require.NoError(t, err)
	s2, err := svc.Create(ctx, alice.ID)
	require.NoError(t, err)
	s3, err := svc.Create(ctx, bob.ID)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAllForUser(ctx, alice.ID))

	_, err = svc.Lookup(ctx, s1.Token)
	require.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Lookup(ctx, s2.Token)
	require.ErrorIs(t, err, ErrSessionNotFound)

	// Bob is untouched
	_, err = svc.Lookup(ctx, s3.Token)
	require.NoError(t, err)
}

func TestHousekeepingSweepsExpiredSessions(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := seedUser(t, st, "alice", "pw1", domain.RoleUser)

	past := time.Now().UTC().Add(-2 * time.Hour)
	expired := domain.Session{
		Token:     "expired-token",
		UserID:    user.ID,
		CreatedAt: past,
		ExpiresAt: past.Add(time.Hour),
	}
	require.NoError(t, st.Sessions().CreateSession(ctx, expired))

	live := domain.Session{
		Token:     "live-token",
		UserID:    user.ID,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, st.Sessions().CreateSession(ctx, live))

	require.NoError(t, st.Sessions().DeleteExpiredSessions(ctx))

	svc := &SessionService{Store: st}
	_, err := svc.Lookup(ctx, "expired-token")
	require.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.Lookup(ctx, "live-token")
	require.NoError(t, err)
}
