package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"os"

	authservice "spa-backoffice/internal/service/auth"
)

// StaffProvider implements environment-based authentication for the two
// staff accounts: an admin and a read-only viewer.
//
// Environment variables:
//
//	ADMIN_USER / ADMIN_USER_PASSWORD
//	VIEWER_USER / VIEWER_USER_PASSWORD (optional)
type StaffProvider struct {
	minPasswordLength int
}

// NewStaffProvider creates a new environment-backed provider.
func NewStaffProvider(minPasswordLength int) *StaffProvider {
	return &StaffProvider{minPasswordLength: minPasswordLength}
}

// ValidateCredentials validates credentials against the configured accounts.
func (p *StaffProvider) ValidateCredentials(_ context.Context, creds authservice.Credentials) error {
	if creds.Username == "" || creds.Password == "" {
		return fmt.Errorf("credentials must not be empty")
	}
	if len(creds.Password) < p.minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", p.minPasswordLength)
	}

	if matchAccount(creds, "ADMIN_USER", "ADMIN_USER_PASSWORD") ||
		matchAccount(creds, "VIEWER_USER", "VIEWER_USER_PASSWORD") {
		return nil
	}
	return fmt.Errorf("invalid credentials")
}

// IdentifyUser returns the role for an authenticated username.
func (p *StaffProvider) IdentifyUser(_ context.Context, username string) (string, error) {
	switch {
	case username != "" && username == os.Getenv("ADMIN_USER"):
		return RoleAdmin, nil
	case username != "" && username == os.Getenv("VIEWER_USER"):
		return RoleViewer, nil
	}
	return "", fmt.Errorf("unknown user")
}

// GetRequirements returns the password requirements.
func (p *StaffProvider) GetRequirements() authservice.CredentialRequirements {
	return authservice.CredentialRequirements{MinPasswordLength: p.minPasswordLength}
}

// Name returns the provider name.
func (p *StaffProvider) Name() string {
	return "staff-env"
}

func matchAccount(creds authservice.Credentials, userEnv, passEnv string) bool {
	user := os.Getenv(userEnv)
	pass := os.Getenv(passEnv)
	if user == "" || pass == "" {
		return false
	}
	// Constant-time comparison to prevent timing attacks.
	userMatch := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(user)) == 1
	passMatch := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(pass)) == 1
	return userMatch && passMatch
}
