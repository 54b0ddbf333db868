package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
// Pre-compiled at initialization for optimal performance (<1μs per operation).
var pathPatterns = []*PathPattern{
	// Member routes with IDs
	{Pattern: regexp.MustCompile(`^/members/\d+$`), Template: "/members/:id"},
	{Pattern: regexp.MustCompile(`^/members/\d+/vouchers$`), Template: "/members/:id/vouchers"},

	// Care package routes with IDs
	{Pattern: regexp.MustCompile(`^/care-packages/\d+$`), Template: "/care-packages/:id"},
	{Pattern: regexp.MustCompile(`^/care-packages/\d+/status$`), Template: "/care-packages/:id/status"},

	// Voucher and payment method routes with IDs
	{Pattern: regexp.MustCompile(`^/vouchers/\d+$`), Template: "/vouchers/:id"},
	{Pattern: regexp.MustCompile(`^/payment-methods/\d+$`), Template: "/payment-methods/:id"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// It converts paths with IDs (e.g., /members/123) to template format (e.g., /members/:id).
// Static paths remain unchanged.
//
// Performance: <1μs per operation (pre-compiled regex patterns)
//
// Examples:
//
//	NormalizePath("/members/123")             // "/members/:id"
//	NormalizePath("/members/42/vouchers")     // "/members/:id/vouchers"
//	NormalizePath("/care-packages/7/status")  // "/care-packages/:id/status"
//	NormalizePath("/care-packages/enabled")   // "/care-packages/enabled" (unchanged)
//	NormalizePath("/healthz")                 // "/healthz" (unchanged)
//	NormalizePath("/auth/token")              // "/auth/token" (unchanged)
//
// Query parameters and trailing slashes are handled:
//
//	NormalizePath("/members/123?page=1")      // "/members/:id"
//	NormalizePath("/members/123/")            // "/members/:id"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	// No match found, return original path. Static paths like /healthz,
	// /metrics and /auth/token pass through unchanged.
	return path
}
