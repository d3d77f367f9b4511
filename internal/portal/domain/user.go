package domain

import "time"

type User struct {
	ID           string
	Identifier   string     // unique login name
	PasswordHash string     // argon2 encoded
	Role         Role       // user or admin
	TOTPSecret   *string    // TOTP secret (nullable, base32 encoded)
	TOTPEnabled  *time.Time // Timestamp when the second factor was confirmed (nullable)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TwoFactorEnabled reports whether the account has a confirmed second factor.
// A stored secret without the enabled timestamp is still pending enrollment.
func (u User) TwoFactorEnabled() bool {
	return u.TOTPEnabled != nil && u.TOTPSecret != nil && *u.TOTPSecret != ""
}

// UserPatch is a partial update applied field-by-field. A nil field means
// "leave unchanged". PasswordHash must already be hashed by the caller.
type UserPatch struct {
	Identifier   *string
	PasswordHash *string
	Role         *Role
}

// IsZero reports whether the patch changes nothing.
func (p UserPatch) IsZero() bool {
	return p.Identifier == nil && p.PasswordHash == nil && p.Role == nil
}
