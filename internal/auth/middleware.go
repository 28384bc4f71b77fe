package auth

import (
	"encoding/json"
	"net/http"

	"taskblog/internal/logger"
	"taskblog/internal/models"
	"taskblog/internal/repository"

	"go.uber.org/zap"
)

// Protect rejects requests without a valid bearer token. On success the
// loaded user is injected into the request context.
func Protect(cfg Config, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractBearer(r.Header.Get("Authorization"))
			if token == "" {
				unauthorized(w, "Not authorized - No token provided")
				return
			}

			claims, err := ParseToken(cfg, token)
			if err != nil {
				logger.Warn("auth: token rejected", zap.Error(err))
				unauthorized(w, "Not authorized - Invalid token")
				return
			}

			user, err := users.GetByID(r.Context(), claims.Subject)
			if err != nil || user == nil || !user.IsActive {
				unauthorized(w, "Not authorized - User not found or inactive")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RestrictTo allows only the listed roles through. Requires Protect
// earlier in the chain.
func RestrictTo(roles ...models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				unauthorized(w, "Not authorized - Please login")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			forbidden(w, "Forbidden - You do not have permission to perform this action")
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	writeJSONError(w, http.StatusUnauthorized, msg)
}

func forbidden(w http.ResponseWriter, msg string) {
	writeJSONError(w, http.StatusForbidden, msg)
}

func writeJSONError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
