package router

import (
	"net/http"

	"go.uber.org/atomic"
)

func middlewareReadiness(ready *atomic.Bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !ready.Load() {
				w.Header().Set("Retry-After", "1")
				writeJSON(w, errorResponse{Message: "server is starting"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
