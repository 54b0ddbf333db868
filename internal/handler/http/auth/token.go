package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"spa-backoffice/internal/handler/http/requestid"
	authservice "spa-backoffice/internal/service/auth"

	"github.com/golang-jwt/jwt/v5"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// tokenTTL is the issued token lifetime, matched to the session cookie.
const tokenTTL = 24 * time.Hour

// TokenHandler creates the POST /auth/token handler: it validates staff
// credentials through the auth service and issues a role-bearing JWT.
func TokenHandler(svc *authservice.AuthService, provider *StaffProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			RecordAuthRequest("unknown", "failure")
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		creds := authservice.Credentials{Username: req.Username, Password: req.Password}
		if err := svc.ValidateCredentials(r.Context(), creds); err != nil {
			logger.Warn("authentication failed",
				slog.String("reason", "invalid_credentials"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("unknown", "failure")
			RecordAuthDuration("unknown", time.Since(start).Seconds())
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		role, err := provider.IdentifyUser(r.Context(), req.Username)
		if err != nil {
			RecordAuthRequest("unknown", "failure")
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		claims := jwt.MapClaims{
			"sub":  req.Username,
			"role": role,
			"iat":  time.Now().Unix(),
			"exp":  time.Now().Add(tokenTTL).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
		if err != nil {
			logger.Error("token signing failed", slog.Any("error", err))
			RecordAuthRequest(role, "failure")
			http.Error(w, "token generation failed", http.StatusInternalServerError)
			return
		}

		logger.Info("authentication succeeded",
			slog.String("role", role),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		RecordAuthRequest(role, "success")
		RecordAuthDuration(role, time.Since(start).Seconds())

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(tokenResponse{Token: signed, Role: role})
	}
}

// Register registers the login endpoint with the given mux.
func Register(mux *http.ServeMux, svc *authservice.AuthService, provider *StaffProvider) {
	mux.Handle("POST /auth/token", TokenHandler(svc, provider))
}
