package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout cancels the request context after the given duration. Handlers
// pass the context down to the store, so a stuck query fails the request
// instead of holding the connection.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
