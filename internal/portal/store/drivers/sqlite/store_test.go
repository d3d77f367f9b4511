package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arcadehub/portal/internal/portal/domain"
	"github.com/arcadehub/portal/internal/portal/store"
	"github.com/arcadehub/portal/pkg/idx"
)

func newStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newUser(identifier string) domain.User {
	now := time.Now().UTC()
	return domain.User{
		ID:           idx.New().String(),
		Identifier:   identifier,
		PasswordHash: "hash",
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUsersRepo(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	alice := newUser("alice")
	require.NoError(t, st.Users().CreateUser(ctx, alice))

	t.Run("lookup by id and identifier", func(t *testing.T) {
		byID, err := st.Users().GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, alice.Identifier, byID.Identifier)

		byIdent, err := st.Users().GetUserByIdentifier(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, alice.ID, byIdent.ID)
	})

	t.Run("missing rows map to ErrNotFound", func(t *testing.T) {
		_, err := st.Users().GetUserByID(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = st.Users().GetUserByIdentifier(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate identifier maps to ErrAlreadyExists", func(t *testing.T) {
		err := st.Users().CreateUser(ctx, newUser("alice"))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("nullable TOTP columns round-trip", func(t *testing.T) {
		got, err := st.Users().GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		require.Nil(t, got.TOTPSecret)
		require.Nil(t, got.TOTPEnabled)

		require.NoError(t, st.Users().UpdateTOTPSecret(ctx, alice.ID, "SECRET"))
		got, err = st.Users().GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		require.NotNil(t, got.TOTPSecret)
		require.Equal(t, "SECRET", *got.TOTPSecret)
		require.Nil(t, got.TOTPEnabled)

		require.NoError(t, st.Users().EnableTwoFactor(ctx, alice.ID))
		got, err = st.Users().GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		require.NotNil(t, got.TOTPEnabled)
		require.True(t, got.TwoFactorEnabled())

		require.NoError(t, st.Users().DisableTwoFactor(ctx, alice.ID))
		got, err = st.Users().GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		require.Nil(t, got.TOTPSecret)
		require.Nil(t, got.TOTPEnabled)
	})

	t.Run("enable without a secret reports not found", func(t *testing.T) {
		bob := newUser("bob")
		require.NoError(t, st.Users().CreateUser(ctx, bob))

		err := st.Users().EnableTwoFactor(ctx, bob.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("partial update keeps absent fields", func(t *testing.T) {
		newIdent := "alice-renamed"
		got, err := st.Users().UpdateUser(ctx, alice.ID, domain.UserPatch{Identifier: &newIdent})
		require.NoError(t, err)
		require.Equal(t, "alice-renamed", got.Identifier)
		require.Equal(t, alice.PasswordHash, got.PasswordHash)
		require.Equal(t, alice.Role, got.Role)
	})

	t.Run("IsEmpty", func(t *testing.T) {
		empty, err := st.Users().IsEmpty(ctx)
		require.NoError(t, err)
		require.False(t, empty)
	})
}

func TestSessionsRepo(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	alice := newUser("alice")
	require.NoError(t, st.Users().CreateUser(ctx, alice))

	now := time.Now().UTC()
	sess := domain.Session{
		Token:     "tok-1",
		UserID:    alice.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, st.Sessions().CreateSession(ctx, sess))

	t.Run("token collision maps to ErrAlreadyExists", func(t *testing.T) {
		err := st.Sessions().CreateSession(ctx, sess)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("expiry round-trips through storage", func(t *testing.T) {
		got, err := st.Sessions().GetSessionByToken(ctx, "tok-1")
		require.NoError(t, err)
		require.Equal(t, alice.ID, got.UserID)
		require.WithinDuration(t, sess.ExpiresAt, got.ExpiresAt, time.Second)
	})

	t.Run("deleting the user cascades", func(t *testing.T) {
		require.NoError(t, st.Users().DeleteUser(ctx, alice.ID))

		_, err := st.Sessions().GetSessionByToken(ctx, "tok-1")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	sentinel := context.Canceled
	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, newUser("alice")); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	// The insert must not have survived
	_, err = st.Users().GetUserByIdentifier(ctx, "alice")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxCommits(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	err := st.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, newUser("alice"))
	})
	require.NoError(t, err)

	_, err = st.Users().GetUserByIdentifier(ctx, "alice")
	require.NoError(t, err)
}
