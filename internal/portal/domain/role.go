package domain

// Role is the account privilege level. Exactly one privileged value exists.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known role values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}
