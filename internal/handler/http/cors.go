package http

import (
	"net/http"
	"strings"
)

// CORSConfig holds the allowed origins for cross-origin requests.
// An empty allowlist disables CORS headers entirely.
type CORSConfig struct {
	AllowedOrigins []string
	MaxAge         string
}

// DefaultCORSConfig parses a comma-separated origin allowlist, typically
// taken from the CORS_ALLOWED_ORIGINS environment variable.
func DefaultCORSConfig(origins string) CORSConfig {
	cfg := CORSConfig{MaxAge: "300"}
	for _, o := range strings.Split(origins, ",") {
		o = strings.TrimSpace(strings.TrimSuffix(o, "/"))
		if o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}
	return cfg
}

func (c CORSConfig) allows(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// CORS returns middleware that handles cross-origin requests for the
// configured origin allowlist. Credentials are allowed because the session
// cookie must accompany requests from the admin frontend. Wildcard origins
// are deliberately unsupported for that reason.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || !cfg.allows(origin) {
				if r.Method == http.MethodOptions && origin != "" {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")

			if r.Method == http.MethodOptions {
				h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
				h.Set("Access-Control-Max-Age", cfg.MaxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
