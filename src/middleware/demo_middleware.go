package middleware

import (
	"net/http"

	"horizon-server/src/logger"
)

// DemoModeMiddleware makes the API read-only apart from the session routes
// and incoming webhooks.
func DemoModeMiddleware(isDemo bool) func(http.Handler) http.Handler {
	writable := map[string]bool{
		"/api/sign-in":       true,
		"/api/sign-up":       true,
		"/api/sign-out":      true,
		"/api/plaid/webhook": true,
	}

	return func(next http.Handler) http.Handler {
		if !isDemo {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Method == http.MethodGet, r.Method == http.MethodHead, r.Method == http.MethodOptions:
			case r.Method == http.MethodPost && writable[r.URL.Path]:
			default:
				log := logger.FromContext(r.Context())
				log.Warn().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("Blocked write in demo mode")
				http.Error(w, "Demo mode: only GET requests are allowed", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
