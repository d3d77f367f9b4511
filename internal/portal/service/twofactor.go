package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/arcadehub/portal/internal/portal/domain"
	"github.com/arcadehub/portal/internal/portal/store"
)

const (
	totpPeriod     = 30
	totpSecretSize = 20 // 160-bit secret, base32 encoded
	totpSkew       = 1  // accept the adjacent time step either side
)

var (
	ErrInvalidSecondFactorCode   = errors.New("invalid second factor code")
	ErrSecondFactorNotConfigured = errors.New("second factor not configured")
	ErrSecondFactorEnabled       = errors.New("second factor already enabled")
)

// TwoFactorService manages TOTP enrollment and verification. An account
// moves disabled -> pending (secret stored, unconfirmed) -> enabled, and a
// disable drops it straight back to disabled from either state.
type TwoFactorService struct {
	Store  store.Store
	Issuer string // issuer label shown in authenticator apps

	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

func (s *TwoFactorService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// BeginEnrollment generates a TOTP secret for the user and stores it without
// enabling the second factor. Idempotent: once a secret exists, pending or
// confirmed, the same secret comes back on every call, so the authenticator
// QR stays stable across views.
func (s *TwoFactorService) BeginEnrollment(ctx context.Context, userID string) (domain.TwoFactorEnrollment, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.TwoFactorEnrollment{}, fmt.Errorf("failed to load user: %w", err)
	}

	if user.TOTPSecret != nil && *user.TOTPSecret != "" {
		return s.enrollment(*user.TOTPSecret, user.Identifier), nil
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: user.Identifier,
		Period:      totpPeriod,
		SecretSize:  totpSecretSize,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return domain.TwoFactorEnrollment{}, fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	if err := s.Store.Users().UpdateTOTPSecret(ctx, userID, key.Secret()); err != nil {
		return domain.TwoFactorEnrollment{}, fmt.Errorf("failed to store TOTP secret: %w", err)
	}

	return s.enrollment(key.Secret(), user.Identifier), nil
}

func (s *TwoFactorService) enrollment(secret, account string) domain.TwoFactorEnrollment {
	return domain.TwoFactorEnrollment{
		Secret:          secret,
		ProvisioningURI: s.ProvisioningURI(secret, account),
		Issuer:          s.Issuer,
		Account:         account,
	}
}

// ProvisioningURI builds the otpauth URL an authenticator app consumes. QR
// rendering is left to the caller.
func (s *TwoFactorService) ProvisioningURI(secret, account string) string {
	v := url.Values{}
	v.Set("secret", secret)
	v.Set("issuer", s.Issuer)
	v.Set("period", strconv.Itoa(totpPeriod))
	v.Set("algorithm", otp.AlgorithmSHA1.String())
	v.Set("digits", otp.DigitsSix.String())

	u := url.URL{
		Scheme:   "otpauth",
		Host:     "totp",
		Path:     "/" + s.Issuer + ":" + account,
		RawQuery: v.Encode(),
	}
	return u.String()
}

// ConfirmEnrollment verifies a code against the pending secret and, if it
// matches, enables the second factor.
func (s *TwoFactorService) ConfirmEnrollment(ctx context.Context, userID string, code string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user.TOTPSecret == nil || *user.TOTPSecret == "" {
		return ErrSecondFactorNotConfigured
	}
	if user.TwoFactorEnabled() {
		return ErrSecondFactorEnabled
	}

	if !s.validate(code, *user.TOTPSecret) {
		return ErrInvalidSecondFactorCode
	}

	if err := s.Store.Users().EnableTwoFactor(ctx, userID); err != nil {
		return fmt.Errorf("failed to enable second factor: %w", err)
	}
	return nil
}

// VerifyCode checks a code against a confirmed second factor. Pending
// enrollments do not count as configured here.
func (s *TwoFactorService) VerifyCode(ctx context.Context, userID string, code string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if !user.TwoFactorEnabled() {
		return ErrSecondFactorNotConfigured
	}

	if !s.validate(code, *user.TOTPSecret) {
		return ErrInvalidSecondFactorCode
	}
	return nil
}

// Disable removes the second factor entirely, discarding the secret. Works
// from both the pending and enabled states.
func (s *TwoFactorService) Disable(ctx context.Context, userID string) error {
	if err := s.Store.Users().DisableTwoFactor(ctx, userID); err != nil {
		return fmt.Errorf("failed to disable second factor: %w", err)
	}
	return nil
}

func (s *TwoFactorService) validate(code, secret string) bool {
	ok, err := totp.ValidateCustom(code, secret, s.now(), totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      totpSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}
