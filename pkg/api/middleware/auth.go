// Package middleware provides HTTP middleware for the bridge endpoint.
package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/marmos91/bridgefs/pkg/wire"
)

// extractBearerToken extracts the token from a Bearer Authorization
// header. Returns the token and true on success.
func extractBearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// BearerAuth rejects requests that do not carry the configured static
// token. The failure body is a wire error so clients surface it through
// the usual translation path.
func BearerAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented, ok := extractBearerToken(r)
			if !ok || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(&wire.ProviderError{
					Code:    wire.CodeNoPermissions,
					Message: "invalid or missing bearer token",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
