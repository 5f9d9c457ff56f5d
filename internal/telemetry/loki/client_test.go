package loki

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func TestPushEvent(t *testing.T) {
	var got PushRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/loki/api/v1/push" {
			t.Errorf("path = %q", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("bad body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	err := PushEvent(context.Background(), srv.URL, ts, `{"x":1}`, map[string]string{"license": "ABC-123-XYZ"})
	if err != nil {
		t.Fatalf("PushEvent: %v", err)
	}
	if len(got.Streams) != 1 {
		t.Fatalf("streams = %d, want 1", len(got.Streams))
	}
	stream := got.Streams[0]
	if stream.Stream["job"] != "lcp" {
		t.Errorf("job label = %q, want lcp", stream.Stream["job"])
	}
	if stream.Stream["license"] != "ABC-123-XYZ" {
		t.Errorf("license label = %q", stream.Stream["license"])
	}
	if len(stream.Values) != 1 || stream.Values[0][1] != `{"x":1}` {
		t.Errorf("values = %v", stream.Values)
	}
}

func TestPushEvent_SanitizesLabels(t *testing.T) {
	var got PushRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := PushEvent(context.Background(), srv.URL, time.Now(), "line", map[string]string{
		"source": " has spaces!",
		"empty":  "   ",
	})
	if err != nil {
		t.Fatalf("PushEvent: %v", err)
	}
	stream := got.Streams[0]
	if v := stream.Stream["source"]; v != "has_spaces_" {
		t.Errorf("source label = %q, want has_spaces_", v)
	}
	if _, ok := stream.Stream["empty"]; ok {
		t.Error("empty label value should be dropped")
	}
}

func TestPushEvent_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "ingester down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := PushEvent(context.Background(), srv.URL, time.Now(), "line", nil); err == nil {
		t.Fatal("want error on 500")
	}
}

func TestPushEvent_EmptyURL(t *testing.T) {
	if err := PushEvent(context.Background(), "", time.Now(), "line", nil); err == nil {
		t.Fatal("want error on empty base URL")
	}
}

func TestPushEventJSON_UsesEventFields(t *testing.T) {
	var got PushRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	raw := []byte(`{"license":"ABC-123-XYZ","eventType":"license.verify","source":"server","createdAt":"2026-01-02T03:04:05Z"}`)
	if err := PushEventJSON(context.Background(), srv.URL, raw); err != nil {
		t.Fatalf("PushEventJSON: %v", err)
	}
	stream := got.Streams[0]
	if stream.Stream["event_type"] != "license.verify" {
		t.Errorf("event_type label = %q", stream.Stream["event_type"])
	}
	wantNs := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC).UnixNano()
	if stream.Values[0][0] != strconv.FormatInt(wantNs, 10) {
		t.Errorf("timestamp = %s, want %d", stream.Values[0][0], wantNs)
	}
}
