// Package middleware provides the HTTP middleware chain for the CargoScope
// API.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID to and from callers.
const RequestIDHeader = "X-Request-Id"

// maxRequestIDLength caps caller-supplied IDs so a hostile header cannot
// bloat every log line and span attribute downstream.
const maxRequestIDLength = 64

type requestIDKey struct{}

// RequestID adopts the caller's request ID or mints a fresh one, stores it in
// the request context, and echoes it on the response so clients can quote it
// when reporting a failed estimate.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		switch {
		case requestID == "":
			requestID = "req_" + uuid.NewString()
		case len(requestID) > maxRequestIDLength:
			requestID = requestID[:maxRequestIDLength]
		}

		w.Header().Set(RequestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request ID stored by RequestID, or an empty
// string outside the middleware chain.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
