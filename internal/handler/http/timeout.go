package http

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout returns middleware that bounds how long a request may run.
// When the deadline passes before the handler finishes, the client
// receives 504 Gateway Timeout and any later handler writes are
// discarded. The request context is cancelled so the handler's DB
// queries abort with it.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()

			guarded := &deadlineWriter{ResponseWriter: w}
			done := make(chan struct{})

			go func() {
				defer close(done)
				next.ServeHTTP(guarded, r.WithContext(ctx))
			}()

			select {
			case <-done:
			case <-ctx.Done():
				guarded.expire()
			}
		})
	}
}

// deadlineWriter serializes access to the response so that exactly one
// side, the handler or the timeout path, produces output.
type deadlineWriter struct {
	http.ResponseWriter
	mu      sync.Mutex
	expired bool
	written bool
}

func (w *deadlineWriter) WriteHeader(statusCode int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.expired || w.written {
		return
	}
	w.written = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *deadlineWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.expired {
		return 0, http.ErrHandlerTimeout
	}
	if !w.written {
		w.written = true
		w.ResponseWriter.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(data)
}

// expire marks the response as timed out and emits the 504 body unless
// the handler already produced output.
func (w *deadlineWriter) expire() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.expired = true
	if !w.written {
		w.Header().Set("Content-Type", "application/json")
		w.ResponseWriter.WriteHeader(http.StatusGatewayTimeout)
		_, _ = w.ResponseWriter.Write([]byte(`{"error":"request timeout"}`))
	}
}
