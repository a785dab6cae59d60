package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MakazhanAlpamys/aibio/internal/rbac"
)

// JWTMiddleware verifies the bearer token and attaches the resolved
// principal to the request context. Role checks happen once here and
// in rbac.Require; handlers never re-validate the wire role string.
func JWTMiddleware(svc *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				deny(w, "authorization required")
				return
			}
			p, err := svc.Parse(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				deny(w, "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(rbac.WithPrincipal(r.Context(), p)))
		})
	}
}

func deny(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
