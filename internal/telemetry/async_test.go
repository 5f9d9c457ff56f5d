package telemetry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type captureEmitter struct {
	mu     sync.Mutex
	events []*Event
	err    error
	done   chan struct{}
}

func newCaptureEmitter() *captureEmitter {
	return &captureEmitter{done: make(chan struct{}, 8)}
}

func (c *captureEmitter) Emit(ctx context.Context, event *Event) error {
	c.mu.Lock()
	c.events = append(c.events, event)
	c.mu.Unlock()
	c.done <- struct{}{}
	return c.err
}

func (c *captureEmitter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func TestEmitAsync_Delivers(t *testing.T) {
	emitter := newCaptureEmitter()
	ev := &Event{ID: "1", EventType: EventVerify, License: "L", CreatedAt: time.Now().UTC()}

	EmitAsync(emitter, context.Background(), ev)

	select {
	case <-emitter.done:
	case <-time.After(2 * time.Second):
		t.Fatal("emit did not run")
	}
	if emitter.count() != 1 {
		t.Errorf("events = %d, want 1", emitter.count())
	}
}

func TestEmitAsync_NilSafe(t *testing.T) {
	// Must not panic or spawn goroutines.
	EmitAsync(nil, context.Background(), &Event{})
	EmitAsync(newCaptureEmitter(), context.Background(), nil)
}

func TestEmitAsync_ErrorLoggedNotPropagated(t *testing.T) {
	emitter := newCaptureEmitter()
	emitter.err = errors.New("sink down")

	EmitAsync(emitter, context.Background(), &Event{ID: "1"})

	select {
	case <-emitter.done:
	case <-time.After(2 * time.Second):
		t.Fatal("emit did not run")
	}
}

func TestFanout(t *testing.T) {
	a := newCaptureEmitter()
	b := newCaptureEmitter()
	b.err = errors.New("sink down")
	c := newCaptureEmitter()

	f := Fanout{a, nil, b, c}
	err := f.Emit(context.Background(), &Event{ID: "1"})

	if a.count() != 1 || c.count() != 1 {
		t.Error("all emitters must run even when one fails")
	}
	if err == nil {
		t.Error("Fanout should surface the failing emitter's error")
	}
}
