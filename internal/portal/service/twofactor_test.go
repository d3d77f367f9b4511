package service

import (
	"context"
	"encoding/base32"
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"

	"github.com/arcadehub/portal/internal/portal/domain"
)

func codeAt(t *testing.T, secret string, at time.Time) string {
	t.Helper()
	code, err := totp.GenerateCodeCustom(secret, at, totp.ValidateOpts{
		Period:    totpPeriod,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	require.NoError(t, err)
	return code
}

func TestBeginEnrollment(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := seedUser(t, st, "alice", "pw1", domain.RoleUser)

	svc := &TwoFactorService{Store: st, Issuer: "arcade-portal"}

	enrollment, err := svc.BeginEnrollment(ctx, user.ID)
	require.NoError(t, err)

	t.Run("secret is 160-bit base32", func(t *testing.T) {
		raw, err := base32.StdEncoding.WithPadding(base32.NoPadding).
			DecodeString(enrollment.Secret)
		require.NoError(t, err)
		require.Len(t, raw, 20)
	})

	t.Run("provisioning URI carries issuer and account", func(t *testing.T) {
		require.True(t, strings.HasPrefix(enrollment.ProvisioningURI, "otpauth://totp/"))
		require.Contains(t, enrollment.ProvisioningURI, "issuer=arcade-portal")
		require.Contains(t, enrollment.ProvisioningURI, enrollment.Secret)
		require.Equal(t, "alice", enrollment.Account)
	})

	t.Run("pending enrollment does not enable the factor", func(t *testing.T) {
		stored, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.False(t, stored.TwoFactorEnabled())
		require.NotNil(t, stored.TOTPSecret)
	})

	t.Run("re-enrolling returns the same pending secret", func(t *testing.T) {
		second, err := svc.BeginEnrollment(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, enrollment.Secret, second.Secret)
		require.Equal(t, enrollment.ProvisioningURI, second.ProvisioningURI)
	})
}

func TestConfirmEnrollment(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := seedUser(t, st, "alice", "pw1", domain.RoleUser)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := &TwoFactorService{
		Store:  st,
		Issuer: "arcade-portal",
		Now:    func() time.Time { return base },
	}

	t.Run("confirm without enrollment fails", func(t *testing.T) {
		err := svc.ConfirmEnrollment(ctx, user.ID, "000000")
		require.ErrorIs(t, err, ErrSecondFactorNotConfigured)
	})

	enrollment, err := svc.BeginEnrollment(ctx, user.ID)
	require.NoError(t, err)

	t.Run("wrong code leaves enrollment pending", func(t *testing.T) {
		err := svc.ConfirmEnrollment(ctx, user.ID, "000000")
		require.ErrorIs(t, err, ErrInvalidSecondFactorCode)

		stored, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.False(t, stored.TwoFactorEnabled())
	})

	t.Run("matching code enables the factor", func(t *testing.T) {
		err := svc.ConfirmEnrollment(ctx, user.ID, codeAt(t, enrollment.Secret, base))
		require.NoError(t, err)

		stored, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.True(t, stored.TwoFactorEnabled())
	})

	t.Run("confirming twice fails", func(t *testing.T) {
		err := svc.ConfirmEnrollment(ctx, user.ID, codeAt(t, enrollment.Secret, base))
		require.ErrorIs(t, err, ErrSecondFactorEnabled)
	})

	t.Run("enrolling while enabled re-displays the same secret", func(t *testing.T) {
		again, err := svc.BeginEnrollment(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, enrollment.Secret, again.Secret)
		require.Equal(t, enrollment.ProvisioningURI, again.ProvisioningURI)

		stored, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.True(t, stored.TwoFactorEnabled(), "re-display must not reset the factor")
	})
}

func TestVerifyCodeWindow(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := seedUser(t, st, "alice", "pw1", domain.RoleUser)

	// Step-aligned instant; the code below belongs to exactly this step.
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	svc := &TwoFactorService{
		Store:  st,
		Issuer: "arcade-portal",
		Now:    func() time.Time { return now },
	}

	enrollment, err := svc.BeginEnrollment(ctx, user.ID)
	require.NoError(t, err)
	require.NoError(t, svc.ConfirmEnrollment(ctx, user.ID, codeAt(t, enrollment.Secret, base)))

	code := codeAt(t, enrollment.Secret, base)

	tests := []struct {
		name  string
		at    time.Time
		valid bool
	}{
		{"same step", base, true},
		{"end of same step", base.Add(29 * time.Second), true},
		{"next step within skew", base.Add(59 * time.Second), true},
		{"previous step within skew", base.Add(-time.Second), true},
		{"two steps ahead", base.Add(60 * time.Second), false},
		{"two steps behind", base.Add(-31 * time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now = tt.at
			err := svc.VerifyCode(ctx, user.ID, code)
			if tt.valid {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrInvalidSecondFactorCode)
			}
		})
	}
}

func TestVerifyCodeRequiresConfirmedFactor(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := seedUser(t, st, "alice", "pw1", domain.RoleUser)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := &TwoFactorService{
		Store:  st,
		Issuer: "arcade-portal",
		Now:    func() time.Time { return base },
	}

	t.Run("disabled account", func(t *testing.T) {
		err := svc.VerifyCode(ctx, user.ID, "123456")
		require.ErrorIs(t, err, ErrSecondFactorNotConfigured)
	})

	t.Run("pending enrollment is not configured", func(t *testing.T) {
		enrollment, err := svc.BeginEnrollment(ctx, user.ID)
		require.NoError(t, err)

		// Even the correct code does not pass before confirmation
		err = svc.VerifyCode(ctx, user.ID, codeAt(t, enrollment.Secret, base))
		require.ErrorIs(t, err, ErrSecondFactorNotConfigured)
	})
}

func TestDisableTwoFactor(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := seedUser(t, st, "alice", "pw1", domain.RoleUser)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := &TwoFactorService{
		Store:  st,
		Issuer: "arcade-portal",
		Now:    func() time.Time { return base },
	}

	enrollment, err := svc.BeginEnrollment(ctx, user.ID)
	require.NoError(t, err)
	require.NoError(t, svc.ConfirmEnrollment(ctx, user.ID, codeAt(t, enrollment.Secret, base)))

	require.NoError(t, svc.Disable(ctx, user.ID))

	stored, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.False(t, stored.TwoFactorEnabled())
	require.Nil(t, stored.TOTPSecret)

	t.Run("old codes stop working", func(t *testing.T) {
		err := svc.VerifyCode(ctx, user.ID, codeAt(t, enrollment.Secret, base))
		require.ErrorIs(t, err, ErrSecondFactorNotConfigured)
	})

	t.Run("disable also cancels a pending enrollment", func(t *testing.T) {
		_, err := svc.BeginEnrollment(ctx, user.ID)
		require.NoError(t, err)
		require.NoError(t, svc.Disable(ctx, user.ID))

		stored, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.Nil(t, stored.TOTPSecret)
	})
}
