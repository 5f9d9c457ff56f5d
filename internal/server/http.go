// Package server assembles the HTTP router from feature handlers and middleware.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	healthhandler "license-control-plane/internal/health/handler"
	licensehandler "license-control-plane/internal/license/handler"
	"license-control-plane/internal/security"
	"license-control-plane/internal/server/middleware"
)

// Deps holds the handlers and middleware inputs for the router.
type Deps struct {
	// License serves /api/license and /api/admin/licenses. Required.
	License *licensehandler.Handler
	// AdminVerifier guards the admin routes. If nil or no credential is
	// configured, every admin request gets 401.
	AdminVerifier *security.AdminVerifier
	// HealthPinger is used by GET /healthz for readiness (e.g. *sql.DB). If nil,
	// /healthz skips the DB ping.
	HealthPinger healthhandler.Pinger
}

// NewRouter builds the full route tree:
//
//   - POST /api/license/verify            → license verify
//   - POST /api/admin/licenses            → admin create (X-Admin-Key)
//   - GET  /api/admin/licenses            → admin list   (X-Admin-Key)
//   - POST /api/admin/licenses/{id}/revoke     (X-Admin-Key)
//   - POST /api/admin/licenses/{id}/hwid-reset (X-Admin-Key)
//   - GET  /healthz                       → liveness + DB ping
func NewRouter(deps Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.WithClientIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", healthhandler.NewHandler(deps.HealthPinger).Check)

	r.Mount("/api/license", deps.License.Routes())

	r.Route("/api/admin", func(admin chi.Router) {
		admin.Use(middleware.RequireAdminKey(deps.AdminVerifier))
		admin.Mount("/licenses", deps.License.AdminRoutes())
	})

	return r
}

// NewHTTPServer wraps the router in an http.Server with sane timeouts.
func NewHTTPServer(addr string, router http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
