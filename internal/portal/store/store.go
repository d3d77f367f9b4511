package store

import (
	"context"
	"errors"

	"github.com/arcadehub/portal/internal/portal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. Sub-repositories are exposed as methods to keep concerns
// tidy and testable.
type Store interface {
	Users() Users
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Users is the user directory contract the auth core consumes.
type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByIdentifier is used during login.
	GetUserByIdentifier(ctx context.Context, identifier string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the identifier is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser applies a partial update field-by-field; nil patch fields
	// leave the column unchanged. Bumps updated_at when anything changes.
	UpdateUser(ctx context.Context, userID string, patch domain.UserPatch) (domain.User, error)

	// DeleteUser cascades to sessions (per schema).
	DeleteUser(ctx context.Context, userID string) error

	// ListUsers returns all users ordered by creation date (oldest first).
	ListUsers(ctx context.Context) ([]domain.User, error)

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)

	// UpdateTOTPSecret stores a pending enrollment secret without enabling
	// the second factor.
	UpdateTOTPSecret(ctx context.Context, userID string, secret string) error

	// EnableTwoFactor marks the second factor confirmed (sets the
	// totp_enabled timestamp).
	EnableTwoFactor(ctx context.Context, userID string) error

	// DisableTwoFactor clears both the secret and the enabled timestamp.
	DisableTwoFactor(ctx context.Context, userID string) error
}

// Sessions owns session records exclusively.
type Sessions interface {
	// CreateSession inserts a new session row. Returns ErrAlreadyExists on
	// a token collision so the caller can regenerate.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByToken returns the raw row regardless of expiry; expiry
	// policy lives in the service layer.
	GetSessionByToken(ctx context.Context, token string) (domain.Session, error)

	// DeleteSession removes a session. Returns ErrNotFound when absent.
	DeleteSession(ctx context.Context, token string) error

	// DeleteUserSessions removes every session belonging to a user.
	DeleteUserSessions(ctx context.Context, userID string) error

	// DeleteExpiredSessions is housekeeping; lazy eviction at read time is
	// the correctness mechanism.
	DeleteExpiredSessions(ctx context.Context) error
}
