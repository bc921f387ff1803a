package middleware

import (
	"context"
	"net/http"

	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/auth"
	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/models"
)

// StudentAuthMiddleware admits only authenticated students and places their
// user id in the request context under "userID".
func StudentAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("token")
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		claims, err := auth.ValidateJWT(cookie.Value)
		if err != nil || claims.Role != string(models.RoleStudent) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), "userID", claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
