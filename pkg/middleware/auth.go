package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vendralabs/vendra/pkg/auth"
	"github.com/vendralabs/vendra/pkg/response"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	usernameKey
)

// Auth rejects requests that do not carry a valid Bearer token and puts the
// authenticated user's ID and username on the request context.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		if token == "" || token == r.Header.Get("Authorization") {
			response.Unauthorized(w, "Authorization token required")
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, usernameKey, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromCtx returns the authenticated user's ID, or 0 when the request
// did not pass through Auth.
func UserIDFromCtx(ctx context.Context) uint {
	id, _ := ctx.Value(userIDKey).(uint)
	return id
}

// UsernameFromCtx returns the authenticated user's username, if any.
func UsernameFromCtx(ctx context.Context) string {
	name, _ := ctx.Value(usernameKey).(string)
	return name
}
