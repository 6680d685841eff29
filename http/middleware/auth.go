package middleware

import (
	"context"
	"net/http"
	"strings"

	"intern-portal/http/response"
	"intern-portal/services"
)

type contextKey string

// adminIDKey carries the authenticated admin's id on the request context
const adminIDKey contextKey = "admin_id"

// RequireAuth validates the Authorization bearer token on protected routes.
// A missing token is 401, an invalid or expired one is 403.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			response.ErrorResponse(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.ErrorResponse(w, http.StatusUnauthorized, "malformed authorization header")
			return
		}

		adminID, err := services.VerifyToken(parts[1])
		if err != nil {
			response.ErrorResponse(w, http.StatusForbidden, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), adminIDKey, adminID)
		next(w, r.WithContext(ctx))
	}
}

// AdminID returns the authenticated admin id from the request context.
func AdminID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(adminIDKey).(int64)
	return id, ok
}
