package auth

import "strings"

// Role constants used in JWT claims and permission checks.
const (
	// RoleAdmin has full access, including mutations and the simulation toggle.
	RoleAdmin = "admin"
	// RoleViewer has read access plus control of their own session date range.
	RoleViewer = "viewer"
)

// Permission defines the allowed operations for a role.
type Permission struct {
	// AllowedMethods specifies which HTTP methods this role can use.
	AllowedMethods []string

	// AllowedPaths specifies which URL paths this role can access.
	// "/*" matches all paths; a trailing "/*" matches the prefix and
	// everything below it.
	AllowedPaths []string
}

// RolePermissions maps each role to its allowed permissions.
//
// Viewers may read every listing and manage their own reporting window, but
// cannot mutate resources or flip simulation mode: POST /system/simulation
// is reachable only through the admin wildcard.
var RolePermissions = map[string]Permission{
	RoleAdmin: {
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedPaths:   []string{"/*"},
	},
	RoleViewer: {
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedPaths: []string{
			"/members",
			"/members/*",
			"/care-packages",
			"/care-packages/*",
			"/vouchers",
			"/vouchers/*",
			"/payment-methods",
			"/payment-methods/*",
			"/exports/*",
			"/system/simulation",
			"/session/date-range",
		},
	},
}

// viewerWriteExceptions are the routes a viewer may hit with non-GET methods.
// The session date range belongs to the viewer's own session, so changing it
// mutates nothing shared.
var viewerWriteExceptions = map[string][]string{
	"/session/date-range": {"POST", "DELETE"},
}

// checkRolePermission checks if a role has permission for a method and path.
func checkRolePermission(role, method, path string) bool {
	perm, ok := RolePermissions[role]
	if !ok {
		return false
	}

	if role == RoleViewer {
		if methods, ok := viewerWriteExceptions[path]; ok {
			for _, m := range methods {
				if m == method {
					return true
				}
			}
		}
	}

	methodAllowed := false
	for _, m := range perm.AllowedMethods {
		if m == method {
			methodAllowed = true
			break
		}
	}
	if !methodAllowed {
		return false
	}

	for _, p := range perm.AllowedPaths {
		if p == "/*" {
			return true
		}
		if prefix, ok := strings.CutSuffix(p, "/*"); ok {
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				return true
			}
			continue
		}
		if path == p {
			return true
		}
	}
	return false
}
