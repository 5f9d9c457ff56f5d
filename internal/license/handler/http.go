// Package handler exposes the license engine over HTTP: the client verify
// endpoint and the admin provisioning endpoints.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/google/uuid"

	"license-control-plane/internal/audit"
	"license-control-plane/internal/license/domain"
	"license-control-plane/internal/license/service"
	"license-control-plane/internal/server/middleware"
	"license-control-plane/internal/telemetry"
)

// Handler serves the license HTTP API. Audit and event emission are
// best-effort and never change the response.
type Handler struct {
	verify *service.VerifyService
	admin  *service.AdminService
	audit  audit.AuditLogger
	events telemetry.EventEmitter

	tracer        trace.Tracer
	verifyCounter metric.Int64Counter
}

// NewHandler returns a Handler. auditLog and events may be nil.
func NewHandler(verify *service.VerifyService, admin *service.AdminService, auditLog audit.AuditLogger, events telemetry.EventEmitter) *Handler {
	meter := otel.Meter("license-handler")
	verifyCounter, _ := meter.Int64Counter("license_verify_total",
		metric.WithDescription("License verify requests by outcome"))
	return &Handler{
		verify:        verify,
		admin:         admin,
		audit:         auditLog,
		events:        events,
		tracer:        otel.Tracer("license-handler"),
		verifyCounter: verifyCounter,
	}
}

// Routes returns the public license routes, mounted at /api/license.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/verify", h.Verify)
	return r
}

// AdminRoutes returns the admin license routes, mounted at /api/admin/licenses.
// The caller is responsible for guarding them with the admin key middleware.
func (h *Handler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Post("/{id}/revoke", h.Revoke)
	r.Post("/{id}/hwid-reset", h.ResetHwid)
	return r
}

// VerifyRequest is the client verification payload. Ts is the client's wall
// clock; it is recorded for audit but never trusted for expiry decisions.
type VerifyRequest struct {
	License string `json:"license"`
	Hwid    string `json:"hwid"`
	Ts      int64  `json:"ts,omitempty"`
}

// Bind implements render.Binder.
func (v *VerifyRequest) Bind(r *http.Request) error {
	if v.License == "" {
		return errors.New("license is required")
	}
	if v.Hwid == "" {
		return errors.New("hwid is required")
	}
	return nil
}

// VerifyResponse is the signed verdict returned to the client.
type VerifyResponse struct {
	Valid     bool   `json:"valid"`
	Expires   int64  `json:"expires"`
	Signature string `json:"signature"`
}

// Verify handles POST /api/license/verify.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "license.verify")
	defer span.End()

	req := &VerifyRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": err.Error()})
		return
	}
	span.SetAttributes(attribute.String("license.id", req.License))

	caller := middleware.GetClientIP(ctx)
	if caller == "" {
		caller = r.RemoteAddr
	}

	verdict, err := h.verify.Verify(ctx, req.License, req.Hwid, caller)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRateLimited):
			h.countVerify(ctx, "rate_limited")
			render.Status(r, http.StatusTooManyRequests)
			render.JSON(w, r, map[string]string{"error": "rate limit exceeded"})
		default:
			h.countVerify(ctx, "store_unavailable")
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, map[string]string{"error": "license store unavailable"})
		}
		return
	}

	outcome := "invalid"
	if verdict.Valid {
		outcome = "valid"
	}
	h.countVerify(ctx, outcome)

	meta, _ := json.Marshal(map[string]any{
		"valid":   verdict.Valid,
		"expires": verdict.ExpiresAt,
		"hwid":    req.Hwid,
		"ts":      req.Ts,
	})
	h.logAudit(ctx, caller, telemetry.EventVerify, req.License, string(meta))
	h.emit(ctx, telemetry.EventVerify, req.License, caller, string(meta))

	render.JSON(w, r, &VerifyResponse{
		Valid:     verdict.Valid,
		Expires:   verdict.ExpiresAt,
		Signature: verdict.Signature,
	})
}

// CreateRequest is the admin provisioning payload.
type CreateRequest struct {
	License string `json:"license"`
	Expires int64  `json:"expires"`
}

// Bind implements render.Binder.
func (c *CreateRequest) Bind(r *http.Request) error {
	if c.License == "" {
		return errors.New("license is required")
	}
	return nil
}

// Create handles POST /api/admin/licenses. Creating an id that already exists
// overwrites it: expiry replaced, hwid cleared, revocation lifted.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "license.admin.create")
	defer span.End()

	req := &CreateRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": err.Error()})
		return
	}

	lic, err := h.admin.Create(ctx, req.License, req.Expires)
	if err != nil {
		h.renderAdminError(w, r, err)
		return
	}

	meta, _ := json.Marshal(map[string]any{"expires": req.Expires})
	h.logAudit(ctx, h.actor(ctx), telemetry.EventCreate, lic.ID, string(meta))
	h.emit(ctx, telemetry.EventCreate, lic.ID, h.actor(ctx), string(meta))

	render.JSON(w, r, map[string]string{"status": "created", "license": lic.ID})
}

// Revoke handles POST /api/admin/licenses/{id}/revoke. Idempotent.
func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "license.admin.revoke")
	defer span.End()

	id := chi.URLParam(r, "id")
	if err := h.admin.Revoke(ctx, id); err != nil {
		h.renderAdminError(w, r, err)
		return
	}

	h.logAudit(ctx, h.actor(ctx), telemetry.EventRevoke, id, "")
	h.emit(ctx, telemetry.EventRevoke, id, h.actor(ctx), "")

	render.JSON(w, r, map[string]string{"status": "revoked", "license": id})
}

// ResetHwid handles POST /api/admin/licenses/{id}/hwid-reset. Clears the bound
// hwid so the next verify re-binds first-use.
func (h *Handler) ResetHwid(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "license.admin.hwid_reset")
	defer span.End()

	id := chi.URLParam(r, "id")
	if err := h.admin.ResetHwid(ctx, id); err != nil {
		h.renderAdminError(w, r, err)
		return
	}

	h.logAudit(ctx, h.actor(ctx), telemetry.EventHwidReset, id, "")
	h.emit(ctx, telemetry.EventHwidReset, id, h.actor(ctx), "")

	render.JSON(w, r, map[string]string{"status": "hwid reset"})
}

// ListEntry is one license record in the admin list response.
type ListEntry struct {
	License string  `json:"license"`
	Expires int64   `json:"expires"`
	Hwid    *string `json:"hwid"`
	Revoked bool    `json:"revoked"`
}

// List handles GET /api/admin/licenses.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "license.admin.list")
	defer span.End()

	licenses, err := h.admin.List(ctx)
	if err != nil {
		h.renderAdminError(w, r, err)
		return
	}

	out := make([]ListEntry, 0, len(licenses))
	for _, lic := range licenses {
		out = append(out, toListEntry(lic))
	}
	render.JSON(w, r, out)
}

func toListEntry(lic *domain.License) ListEntry {
	return ListEntry{
		License: lic.ID,
		Expires: lic.ExpiresAt,
		Hwid:    lic.Hwid,
		Revoked: lic.Revoked,
	}
}

func (h *Handler) renderAdminError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidLicenseID):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": err.Error()})
	default:
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]string{"error": "license store unavailable"})
	}
}

func (h *Handler) actor(ctx context.Context) string {
	if actor, ok := middleware.GetActor(ctx); ok {
		return actor
	}
	return audit.SentinelActor
}

func (h *Handler) countVerify(ctx context.Context, result string) {
	if h.verifyCounter == nil {
		return
	}
	h.verifyCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

func (h *Handler) logAudit(ctx context.Context, actor, action, resource, metadata string) {
	if h.audit == nil {
		return
	}
	h.audit.LogEvent(ctx, actor, action, resource, metadata)
}

func (h *Handler) emit(ctx context.Context, eventType, license, actor, metadata string) {
	if h.events == nil {
		return
	}
	telemetry.EmitAsync(h.events, ctx, &telemetry.Event{
		ID:        uuid.New().String(),
		EventType: eventType,
		License:   license,
		Actor:     actor,
		Source:    "server",
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	})
}
