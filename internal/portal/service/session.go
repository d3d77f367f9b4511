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
	"github.com/arcadehub/portal/pkg/slogx"
)

// DefaultSessionTTL is how long an issued session stays valid.
const DefaultSessionTTL = 30 * 24 * time.Hour

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrStorage         = errors.New("storage failure")
)

// SessionService issues and validates opaque bearer session tokens. Tokens
// are stored server-side, so revocation is immediate.
type SessionService struct {
	Store store.Store
	TTL   time.Duration

	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultSessionTTL
}

// Create issues a fresh session for the user. A token collision (256 bits of
// entropy, so effectively never) is retried once before giving up.
func (s *SessionService) Create(ctx context.Context, userID string) (domain.Session, error) {
	l := slogx.FromContext(ctx)

	now := s.now().UTC()
	for attempt := 0; attempt < 2; attempt++ {
		token, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return domain.Session{}, fmt.Errorf("generate session token: %w", err)
		}

		sess := domain.Session{
			Token:     token,
			UserID:    userID,
			CreatedAt: now,
			ExpiresAt: now.Add(s.ttl()),
		}

		err = s.Store.Sessions().CreateSession(ctx, sess)
		if errors.Is(err, store.ErrAlreadyExists) {
			l.Warn("session token collision, regenerating", slog.String("user_id", userID))
			continue
		}
		if err != nil {
			l.Error("failed to persist session", slog.Any("error", err))
			return domain.Session{}, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		return sess, nil
	}
	return domain.Session{}, fmt.Errorf("%w: repeated token collision", ErrStorage)
}

// Lookup resolves a token to its live session. Expired rows are evicted on
// the spot and reported as ErrSessionExpired; a session whose expiry equals
// the current instant is already expired.
func (s *SessionService) Lookup(ctx context.Context, token string) (domain.Session, error) {
	sess, err := s.Store.Sessions().GetSessionByToken(ctx, token)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if sess.Expired(s.now()) {
		// Lazy eviction: the row is gone before we report expiry, so a
		// replayed token reads as not found.
		if err := s.Store.Sessions().DeleteSession(ctx, token); err != nil && !errors.Is(err, store.ErrNotFound) {
			slogx.FromContext(ctx).Error("failed to evict expired session", slog.Any("error", err))
		}
		return domain.Session{}, ErrSessionExpired
	}
	return sess, nil
}

// Revoke removes a session. Unknown tokens report ErrSessionNotFound.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	err := s.Store.Sessions().DeleteSession(ctx, token)
	if errors.Is(err, store.ErrNotFound) {
		return ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// RevokeAllForUser removes every session belonging to the user, e.g. after a
// password change or account deletion.
func (s *SessionService) RevokeAllForUser(ctx context.Context, userID string) error {
	if err := s.Store.Sessions().DeleteUserSessions(ctx, userID); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}
