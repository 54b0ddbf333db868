package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestInputValidation(t *testing.T) {
	handler := InputValidation()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("normal request passes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/members", nil)
		req.Header.Set("Authorization", "Bearer short-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("oversized authorization header rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/members", nil)
		req.Header.Set("Authorization", "Bearer "+strings.Repeat("x", 9000))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("oversized path rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/members/"+strings.Repeat("a", 3000), nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusRequestURITooLong {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusRequestURITooLong)
		}
	})
}
