package domain

import "time"

// AuditLog represents an audit event: an admin mutation or a verify outcome.
type AuditLog struct {
	ID string
	// Actor is "admin" for authenticated admin calls, otherwise the caller identity
	// (client IP) of a verify request.
	Actor     string
	Action    string
	Resource  string
	IP        string
	Metadata  string
	CreatedAt time.Time
}
