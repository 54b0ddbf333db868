// Package auth holds the transport-agnostic authentication service.
// Concrete credential checks live in providers; the HTTP layer only
// talks to AuthService.
package auth

import (
	"context"
	"strings"
)

// Credentials carries a username and password pair for validation.
type Credentials struct {
	Username string
	Password string
}

// CredentialRequirements is the password policy a provider enforces.
type CredentialRequirements struct {
	MinPasswordLength int
	WeakPasswords     []string
}

// AuthProvider validates credentials against some backing store, for
// example environment-configured staff accounts.
type AuthProvider interface {
	ValidateCredentials(ctx context.Context, creds Credentials) error
	GetRequirements() CredentialRequirements
	Name() string
}

// AuthService wraps a provider with the endpoint allowlist used by the
// HTTP middleware.
type AuthService struct {
	provider        AuthProvider
	publicEndpoints []string
}

// NewAuthService creates a service backed by the given provider.
// publicEndpoints are path prefixes that skip authentication.
func NewAuthService(provider AuthProvider, publicEndpoints []string) *AuthService {
	return &AuthService{
		provider:        provider,
		publicEndpoints: publicEndpoints,
	}
}

// ValidateCredentials delegates to the configured provider.
func (s *AuthService) ValidateCredentials(ctx context.Context, creds Credentials) error {
	return s.provider.ValidateCredentials(ctx, creds)
}

// IsPublicEndpoint reports whether path matches a public prefix.
func (s *AuthService) IsPublicEndpoint(path string) bool {
	for _, endpoint := range s.publicEndpoints {
		if strings.HasPrefix(path, endpoint) {
			return true
		}
	}
	return false
}

// GetProvider returns the active provider, mainly for token issuance
// which needs the provider's password policy.
func (s *AuthService) GetProvider() AuthProvider {
	return s.provider
}
