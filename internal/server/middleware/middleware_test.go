package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"license-control-plane/internal/security"
)

func TestWithClientIP(t *testing.T) {
	var got string
	h := WithClientIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetClientIP(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:51442"
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got != "203.0.113.9" {
		t.Errorf("client ip = %q, want 203.0.113.9", got)
	}
}

func TestWithClientIP_NoPort(t *testing.T) {
	var got string
	h := WithClientIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetClientIP(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9"
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got != "203.0.113.9" {
		t.Errorf("client ip = %q, want 203.0.113.9", got)
	}
}

func TestRequireAdminKey(t *testing.T) {
	verifier := security.NewAdminVerifier("", "sekret", nil)

	var actor string
	var actorSet bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, actorSet = GetActor(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	h := RequireAdminKey(verifier)(next)

	t.Run("valid key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(AdminKeyHeader, "sekret")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rr.Code)
		}
		if !actorSet || actor != AdminActor {
			t.Errorf("actor = %q (%v), want %q", actor, actorSet, AdminActor)
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(AdminKeyHeader, "nope")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rr.Code)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rr.Code)
		}
	})

	t.Run("no credential configured", func(t *testing.T) {
		disabled := security.NewAdminVerifier("", "", nil)
		hh := RequireAdminKey(disabled)(next)
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(AdminKeyHeader, "anything")
		rr := httptest.NewRecorder()
		hh.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rr.Code)
		}
	})
}
