package middleware

import (
	"log"
	"net/http"

	"workforce/internal/transport/http/api"
)

func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic recovered [%s]: %v", GetRequestID(r.Context()), rec)
				api.Fail(w, http.StatusInternalServerError, "internal", "an internal error occurred", GetRequestID(r.Context()))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
