package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-trip-booking/internal/domain"
)

type contextKey string

const identityKey contextKey = "identity"

// TokenValidator exchanges a bearer token for the authenticated user.
type TokenValidator interface {
	CurrentUser(ctx context.Context, token string) (domain.User, error)
}

// Auth returns middleware that validates the Bearer token and injects the
// authenticated user into the request context.
func Auth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeJSONError(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")
			user, err := validator.CurrentUser(r.Context(), token)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext extracts the authenticated user from the request context.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(identityKey).(domain.User)
	return u, ok
}
