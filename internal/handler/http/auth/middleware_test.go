package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-key"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuthz(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	validToken := signToken(t, jwt.MapClaims{
		"sub":  "alice",
		"role": RoleAdmin,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	viewerToken := signToken(t, jwt.MapClaims{
		"sub":  "bob",
		"role": RoleViewer,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	expiredToken := signToken(t, jwt.MapClaims{
		"sub":  "alice",
		"role": RoleAdmin,
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})
	unknownRoleToken := signToken(t, jwt.MapClaims{
		"sub":  "mallory",
		"role": "superuser",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name       string
		method     string
		path       string
		authHeader string
		wantStatus int
	}{
		{"public endpoint needs no token", "GET", "/healthz", "", http.StatusOK},
		{"missing token rejected", "GET", "/members", "", http.StatusUnauthorized},
		{"malformed header rejected", "GET", "/members", "Token abc", http.StatusUnauthorized},
		{"garbage token rejected", "GET", "/members", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"expired token rejected", "GET", "/members", "Bearer " + expiredToken, http.StatusUnauthorized},
		{"unknown role rejected", "GET", "/members", "Bearer " + unknownRoleToken, http.StatusUnauthorized},
		{"admin allowed to mutate", "POST", "/members", "Bearer " + validToken, http.StatusOK},
		{"viewer allowed to read", "GET", "/members", "Bearer " + viewerToken, http.StatusOK},
		{"viewer forbidden to mutate", "POST", "/members", "Bearer " + viewerToken, http.StatusForbidden},
		{"viewer forbidden to toggle simulation", "POST", "/system/simulation", "Bearer " + viewerToken, http.StatusForbidden},
		{"viewer allowed to set date range", "POST", "/session/date-range", "Bearer " + viewerToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			Authz(okHandler).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

// A security policy file can replace the public allowlist; Authz must honor
// the configured prefixes, not the built-in defaults.
func TestAuthz_ConfiguredPublicEndpoints(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	SetPublicEndpoints([]string{"/custom-status", "/auth/"})
	t.Cleanup(func() { SetPublicEndpoints(nil) })

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"configured endpoint needs no token", "/custom-status", http.StatusOK},
		{"default endpoint no longer public", "/healthz", http.StatusUnauthorized},
		{"protected endpoint still requires token", "/members", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Authz(okHandler).ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestAuthz_ContextCarriesIdentity(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	token := signToken(t, jwt.MapClaims{
		"sub":  "alice",
		"role": RoleAdmin,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	var gotUser, gotRole string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserFromContext(r.Context())
		gotRole = RoleFromContext(r.Context())
	})

	req := httptest.NewRequest("GET", "/members", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	Authz(handler).ServeHTTP(httptest.NewRecorder(), req)

	if gotUser != "alice" {
		t.Errorf("user = %q, want %q", gotUser, "alice")
	}
	if gotRole != RoleAdmin {
		t.Errorf("role = %q, want %q", gotRole, RoleAdmin)
	}
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "alice",
		"role": RoleAdmin,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, _, err := validateJWT("Bearer "+signed, []byte(testSecret)); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}
