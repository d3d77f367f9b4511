package service

import "github.com/arcadehub/portal/internal/portal/domain"

// DenyReason classifies why an authorization check refused access. The
// string values are safe to show to the caller.
type DenyReason string

const (
	DenyNoSession DenyReason = "no session"
	DenyNotOwner  DenyReason = "not owner"
	DenyNotAdmin  DenyReason = "not admin"
)

// Decision is the outcome of an authorization check. Reason is set only when
// access is denied.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

// Guard implements the owner-or-admin policy for per-user resources. It is a
// pure predicate over the actor and the resource owner; it never touches
// storage.
type Guard struct{}

// Check allows access when the actor owns the resource or holds the admin
// role. A nil actor means no authenticated session.
func (Guard) Check(actor *domain.User, ownerID string) Decision {
	if actor == nil {
		return Decision{Reason: DenyNoSession}
	}
	if actor.Role == domain.RoleAdmin || actor.ID == ownerID {
		return Decision{Allowed: true}
	}
	return Decision{Reason: DenyNotOwner}
}

// RequireAdmin allows access only to admins.
func (Guard) RequireAdmin(actor *domain.User) Decision {
	if actor == nil {
		return Decision{Reason: DenyNoSession}
	}
	if actor.Role != domain.RoleAdmin {
		return Decision{Reason: DenyNotAdmin}
	}
	return Decision{Allowed: true}
}
