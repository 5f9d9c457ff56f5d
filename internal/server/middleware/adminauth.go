package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"license-control-plane/internal/security"
)

// AdminKeyHeader carries the admin credential on admin routes.
const AdminKeyHeader = "X-Admin-Key"

// AdminActor is the actor recorded for authenticated admin requests.
const AdminActor = "admin"

// RequireAdminKey rejects requests whose X-Admin-Key header does not match the
// configured admin credential. Runs before any store access, so an unauthorized
// probe learns nothing about license state. On success the actor is set to
// AdminActor in the request context.
func RequireAdminKey(verifier *security.AdminVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			candidate := strings.TrimSpace(r.Header.Get(AdminKeyHeader))
			if verifier == nil || !verifier.Verify(candidate) {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, map[string]string{"error": "unauthorized"})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), AdminActor)))
		})
	}
}
