package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type fixedMode bool

func (f fixedMode) Active() bool { return bool(f) }

func TestSimulationHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name   string
		active bool
		want   string
	}{
		{"off", false, "off"},
		{"on", true, "on"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := SimulationHeader(fixedMode(tt.active))(next)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest("GET", "/members", nil))

			if got := rec.Header().Get(SimulationModeHeader); got != tt.want {
				t.Errorf("%s = %q, want %q", SimulationModeHeader, got, tt.want)
			}
		})
	}
}
