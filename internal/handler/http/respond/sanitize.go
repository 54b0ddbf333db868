package respond

import (
	"regexp"
)

var (
	// Database credentials embedded in a DSN
	dbPasswordPattern = regexp.MustCompile(`://([^:/]+):([^@]+)@`)

	// Bearer tokens quoted back by lower layers
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-_.]+`)

	// key=value style secrets (password=..., secret=..., token=...)
	keyValueSecretPattern = regexp.MustCompile(`(?i)(password|secret|token)=\S+`)
)

// SanitizeError returns the error message with credentials masked.
// Connection errors tend to echo the full DSN, and auth failures may
// include the presented token, so both are scrubbed before logging.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = bearerPattern.ReplaceAllString(msg, "Bearer ****")
	msg = keyValueSecretPattern.ReplaceAllString(msg, "$1=****")

	return msg
}
