// Package auth provides JWT authentication and role-based authorization for
// the back-office API. Tokens are issued against environment-configured
// staff accounts; the admin role gates every mutation and the simulation
// toggle, while viewers get read access plus their own session date range.
package auth

import "strings"

// PublicEndpoints are the default path prefixes that never require a token:
// health probes, metrics scrapes, and the login endpoint itself.
var PublicEndpoints = []string{
	"/healthz",
	"/readyz",
	"/livez",
	"/metrics",
	"/auth/",
}

// publicPrefixes is the allowlist Authz actually consults. It starts as the
// defaults and is replaced by SetPublicEndpoints when a security policy file
// configures its own list.
var publicPrefixes = PublicEndpoints

// SetPublicEndpoints replaces the allowlist consulted by Authz. Call it
// during startup, before the server accepts requests; an empty list restores
// the defaults.
func SetPublicEndpoints(prefixes []string) {
	if len(prefixes) == 0 {
		publicPrefixes = PublicEndpoints
		return
	}
	publicPrefixes = prefixes
}

// IsPublicEndpoint checks if a path is publicly accessible.
func IsPublicEndpoint(path string) bool {
	for _, endpoint := range publicPrefixes {
		if strings.HasPrefix(path, endpoint) {
			return true
		}
	}
	return false
}
