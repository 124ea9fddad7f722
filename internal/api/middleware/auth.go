package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/cardtable/cardtable/internal/api/apierr"
	"github.com/cardtable/cardtable/internal/services/auth"
)

type contextKey string

const guestContextKey contextKey = "guest"

// Auth creates authentication middleware that requires a valid guest token
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			guest, err := authService.VerifyToken(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), guestContextKey, guest)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the bearer token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// GetGuest returns the authenticated guest from the request context
func GetGuest(ctx context.Context) *auth.Guest {
	guest, _ := ctx.Value(guestContextKey).(*auth.Guest)
	return guest
}
