package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/warp/payroll-engine/auth"
	"github.com/warp/payroll-engine/payroll"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const callerKey contextKey = "caller"

// CallerFromContext extracts the authenticated caller from the context.
func CallerFromContext(ctx context.Context) (payroll.Caller, bool) {
	caller, ok := ctx.Value(callerKey).(payroll.Caller)
	return caller, ok
}

// RequireAuth validates the bearer token and attaches the caller identity
// to the request context. Requests without a valid token get 401.
func RequireAuth(tokens *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "No token provided", nil)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeError(w, http.StatusUnauthorized, "Invalid authorization header", nil)
				return
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid token", err)
				return
			}

			ctx := context.WithValue(r.Context(), callerKey, claims.Caller())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects non-admin callers with 403 before any side effect.
// Must run after RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "No token provided", nil)
			return
		}
		if !caller.IsAdmin() {
			writeError(w, http.StatusForbidden, "Access denied. Admins only.", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
