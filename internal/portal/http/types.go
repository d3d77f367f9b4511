package http

// Request and response bodies for the JSON API. Kept together so the
// swagger annotations have a single place to point at.

type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

type RegisterRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// LoginResponse reports the flow outcome. The session token itself travels
// in the cookie, never in the body.
type LoginResponse struct {
	Outcome string `json:"outcome"` // "authenticated" or "second_factor_required"
}

type SecondFactorRequest struct {
	Code string `json:"code"`
}

type TOTPEnrollResponse struct {
	Secret          string `json:"secret"`
	ProvisioningURI string `json:"provisioning_uri"`
	Issuer          string `json:"issuer"`
	Account         string `json:"account"`
}

type UserResponse struct {
	ID               string `json:"id"`
	Identifier       string `json:"identifier"`
	Role             string `json:"role"`
	TwoFactorEnabled bool   `json:"two_factor_enabled"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

type UpdateUserRequest struct {
	Identifier *string `json:"identifier,omitempty"`
	Password   *string `json:"password,omitempty"`
	Role       *string `json:"role,omitempty"`
}

type CreateUserRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	Role       string `json:"role,omitempty"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}
