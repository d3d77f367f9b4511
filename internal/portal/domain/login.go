package domain

// LoginOutcome discriminates the result of a login attempt.
type LoginOutcome string

const (
	// LoginAuthenticated means a session was issued; Token carries it.
	LoginAuthenticated LoginOutcome = "authenticated"
	// LoginSecondFactorRequired means the password checked out but the
	// account has a confirmed second factor; PendingUserID identifies the
	// account for the follow-up code verification.
	LoginSecondFactorRequired LoginOutcome = "second_factor_required"
)

// LoginResult is the typed outcome of Login / CompleteSecondFactor.
type LoginResult struct {
	Outcome       LoginOutcome
	Token         string // set when Outcome == LoginAuthenticated
	PendingUserID string // set when Outcome == LoginSecondFactorRequired
}
