package middleware

import (
	"net/http"

	"workforce/internal/domain/auth"
	"workforce/internal/transport/http/api"
)

// RequireAction gates a route on the capability table: the session role
// must allow the action or the request is rejected before the handler
// runs. Finer self-scoping checks stay inside the handlers.
func RequireAction(action auth.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
				return
			}

			if !auth.Allows(user.Role, action) {
				api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", GetRequestID(r.Context()))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
