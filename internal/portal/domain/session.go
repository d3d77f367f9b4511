package domain

import "time"

// Session is an opaque server-side login session. Token is the primary key;
// the value itself is the credential presented by the client.
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer valid at the given time.
// The upper bound is exclusive: a session is expired the instant now equals
// ExpiresAt.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
