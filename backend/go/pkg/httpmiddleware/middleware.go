package httpmiddleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"FundingIntel/backend/go/pkg/circuitbreaker"

	"golang.org/x/time/rate"
)

// errorBody mirrors the JSON error envelope used by the API handlers.
type errorBody struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	var body errorBody
	body.Error.Message = message
	body.Error.Code = code
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// RateLimit rejects requests with 429 once the token bucket is empty.
func RateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too Many Requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// responseWriter is a wrapper for http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Flush keeps streaming responses working behind the wrapper.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// CircuitBreak applies the circuit breaker pattern to an HTTP handler.
// Responses with status >= 500 count as failures.
func CircuitBreak(breaker *circuitbreaker.Breaker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			err := breaker.Execute(func() error {
				next.ServeHTTP(rw, r)
				if rw.statusCode >= http.StatusInternalServerError {
					return fmt.Errorf("server error: status code %d", rw.statusCode)
				}
				return nil
			})
			if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
				writeError(w, http.StatusServiceUnavailable, "CIRCUIT_OPEN", "Service Unavailable: Circuit Breaker is open")
			}
		})
	}
}
