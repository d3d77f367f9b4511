package domain

// TwoFactorEnrollment is handed to the client when enrollment begins. The
// provisioning URI is consumed by external QR-rendering code; rendering
// itself happens outside this subsystem.
type TwoFactorEnrollment struct {
	Secret          string // base32 encoded TOTP secret
	ProvisioningURI string // otpauth:// URL for authenticator apps
	Issuer          string
	Account         string // account label shown in the authenticator
}
