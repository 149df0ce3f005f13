package handlers

import (
	"net/http"
	"strings"

	"ricemill/utils"
)

// RequireAuth gates a handler behind a Bearer token issued at login.
func RequireAuth(secret string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, ApiResponse{
				Success: false,
				Message: "Missing bearer token",
			})
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims, err := utils.ParseToken(secret, tokenStr)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, ApiResponse{
				Success: false,
				Message: "Invalid or expired token",
			})
			return
		}

		r.Header.Set("X-User-Email", claims.Email)
		r.Header.Set("X-User-Role", claims.Role)
		next(w, r)
	}
}
