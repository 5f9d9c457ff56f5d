// Package telemetry emits license events (verify outcomes, admin mutations) to
// sinks such as Kafka and OTel Logs. Emission is best-effort everywhere: callers
// log and ignore errors.
package telemetry

import (
	"context"
	"time"
)

// Event types emitted by the server.
const (
	EventVerify    = "license.verify"
	EventCreate    = "license.create"
	EventRevoke    = "license.revoke"
	EventHwidReset = "license.hwid_reset"
)

// Event is a single license event. Serialized as JSON on the wire (Kafka message
// value, Loki log line).
type Event struct {
	ID        string `json:"id"`
	EventType string `json:"eventType"`
	// License is the license identifier the event concerns, if any.
	License string `json:"license,omitempty"`
	// Actor is "admin" for admin mutations, otherwise the caller identity.
	Actor  string `json:"actor,omitempty"`
	Source string `json:"source"`
	// Metadata is a JSON detail payload, e.g. the verdict of a verify.
	Metadata  string    `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// EventEmitter emits license events (e.g. to Kafka or OTel Logs). Best-effort;
// callers log and ignore errors.
type EventEmitter interface {
	Emit(ctx context.Context, event *Event) error
}

// Fanout emits to every emitter in order, returning the last error. Nil emitters
// are skipped.
type Fanout []EventEmitter

// Emit sends event to each emitter. Best-effort: all emitters run even if an
// earlier one fails.
func (f Fanout) Emit(ctx context.Context, event *Event) error {
	var lastErr error
	for _, e := range f {
		if e == nil {
			continue
		}
		if err := e.Emit(ctx, event); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
