package http

import "net/http"

// Input limits applied before any handler runs. Session cookies and
// bearer tokens stay well under the header cap; the body cap covers
// the largest care package payload with room to spare.
const (
	maxAuthHeaderBytes = 8192
	maxPathBytes       = 2048
	maxInputBodyBytes  = 10 << 20
)

// InputValidation returns middleware that rejects oversized requests
// before they reach routing or JSON decoding.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Authorization")) > maxAuthHeaderBytes {
				writeInputError(w, http.StatusBadRequest, "authorization header too large")
				return
			}

			if len(r.URL.Path) > maxPathBytes {
				writeInputError(w, http.StatusRequestURITooLong, "URI too long")
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxInputBodyBytes)

			next.ServeHTTP(w, r)
		})
	}
}

func writeInputError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
