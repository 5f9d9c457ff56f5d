// Package handler serves liveness/readiness for Kubernetes, load balancers, and CI.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// Pinger reports whether the database is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler answers GET /healthz. A nil pinger means the process serves without a
// database and always reports ok.
type Handler struct {
	pinger Pinger
}

// NewHandler returns a health Handler checking pinger. pinger may be nil.
func NewHandler(pinger Pinger) *Handler {
	return &Handler{pinger: pinger}
}

// Response is the health check body.
type Response struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// Check handles GET /healthz. Returns 200 when healthy, 503 when the database
// ping fails; never an error, so probes always get a body.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	if h.pinger == nil {
		render.JSON(w, r, &Response{Status: "ok"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.pinger.PingContext(ctx); err != nil {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, &Response{Status: "degraded", Database: "unreachable"})
		return
	}
	render.JSON(w, r, &Response{Status: "ok", Database: "ok"})
}
