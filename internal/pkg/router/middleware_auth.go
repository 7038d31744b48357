package router

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// middlewareAuthentication requires "Authorization: Bearer <token>" when a
// token is configured. An empty token disables the check.
func middlewareAuthentication(token string) Middleware {
	token = strings.TrimSpace(token)

	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := strings.Fields(r.Header.Get("Authorization"))
			if len(p) != 2 || !strings.EqualFold(p[0], "Bearer") {
				writeJSON(w, errorResponse{Message: "Authentication required"}, http.StatusUnauthorized)
				return
			}

			if subtle.ConstantTimeCompare([]byte(p[1]), []byte(token)) != 1 {
				writeJSON(w, errorResponse{Message: "Invalid token"}, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
