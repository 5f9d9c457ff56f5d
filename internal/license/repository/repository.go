package repository

import (
	"context"

	"license-control-plane/internal/license/domain"
)

// Repository defines persistence for license records. Implementations return
// errors only for storage failures; the service layer treats any such error as a
// transient outage, never as "license invalid".
type Repository interface {
	// Get returns the license for id, or nil if not found.
	Get(ctx context.Context, id string) (*domain.License, error)
	// Upsert creates or fully overwrites the record for id: hwid cleared, revoked
	// false, expiry set. Returns the resulting record.
	Upsert(ctx context.Context, id string, expiresAt int64) (*domain.License, error)
	// SetHwid binds hwid only if none is currently bound (compare-and-set).
	// Returns true when this call won the binding; false when a hwid was already
	// bound (including a concurrent binder winning first) or the id is unknown.
	SetHwid(ctx context.Context, id, hwid string) (bool, error)
	// Revoke marks the license revoked. A no-op for unknown ids.
	Revoke(ctx context.Context, id string) error
	// ClearHwid removes the bound hwid, re-opening first-use binding. A no-op for
	// unknown ids.
	ClearHwid(ctx context.Context, id string) error
	// List returns every license record. Order is unspecified.
	List(ctx context.Context) ([]*domain.License, error)
}
