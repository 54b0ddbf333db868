package http

import "net/http"

// SimulationModeHeader is set on every response so clients can tell which
// database pool served the request.
const SimulationModeHeader = "X-Simulation-Mode"

// ModeReporter reports whether simulation routing is currently active.
type ModeReporter interface {
	Active() bool
}

// SimulationHeader returns middleware that stamps each response with the
// current routing mode. The header is written before the handler runs so it
// survives streaming responses.
func SimulationHeader(mode ModeReporter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			value := "off"
			if mode.Active() {
				value = "on"
			}
			w.Header().Set(SimulationModeHeader, value)
			next.ServeHTTP(w, r)
		})
	}
}
