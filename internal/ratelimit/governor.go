// Package ratelimit provides a per-caller fixed-window request governor for the
// verify endpoint. In-memory and single-instance: counters are lost on restart and
// not shared across replicas, which is acceptable for a best-effort abuse guard.
package ratelimit

import (
	"sync"
	"time"
)

type window struct {
	count     int
	windowEnd time.Time
}

// Governor admits or rejects requests per caller identity using a fixed window.
// The reset-and-admit path is atomic per key: the mutex serializes concurrent
// arrivals from the same caller so window boundaries never double-count.
type Governor struct {
	mu     sync.Mutex
	byKey  map[string]window
	limit  int
	length time.Duration
	nowF   func() time.Time
}

// NewGovernor returns a Governor admitting up to limit requests per caller within
// each window of the given length.
func NewGovernor(limit int, length time.Duration) *Governor {
	return &Governor{
		byKey:  make(map[string]window),
		limit:  limit,
		length: length,
		nowF:   time.Now,
	}
}

// Admit records a request from callerID and reports whether it is allowed.
// A first request, or any request after the caller's window has elapsed, resets the
// counter to 1 and opens a new window. A request at the limit is rejected without
// incrementing, so rejected bursts do not extend the caller's window.
func (g *Governor) Admit(callerID string) bool {
	now := g.nowF()

	g.mu.Lock()
	defer g.mu.Unlock()

	w, ok := g.byKey[callerID]
	if !ok || !now.Before(w.windowEnd) {
		g.byKey[callerID] = window{count: 1, windowEnd: now.Add(g.length)}
		return true
	}
	if w.count >= g.limit {
		return false
	}
	w.count++
	g.byKey[callerID] = w
	return true
}

// Prune drops expired windows. Callers may run it periodically to bound memory on
// long-lived processes with high caller cardinality.
func (g *Governor) Prune() {
	now := g.nowF()

	g.mu.Lock()
	defer g.mu.Unlock()

	for k, w := range g.byKey {
		if !now.Before(w.windowEnd) {
			delete(g.byKey, k)
		}
	}
}
