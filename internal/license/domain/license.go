// Package domain defines the license record and its state rules.
package domain

import "time"

// State is the lifecycle state of a license record at a given instant.
type State string

const (
	// StateUnbound: no hwid yet; the next successful verification binds one.
	StateUnbound State = "unbound"
	// StateBoundValid: hwid bound, not revoked, not expired.
	StateBoundValid State = "bound_valid"
	// StateInvalid: revoked or expired, regardless of hwid.
	StateInvalid State = "invalid"
)

// License is a persisted license record, uniquely keyed by ID.
type License struct {
	ID string
	// ExpiresAt is an epoch-seconds deadline. The license is invalid strictly once
	// the current time exceeds it: ExpiresAt == now is still valid for that second.
	ExpiresAt int64
	// Hwid is the bound hardware identity, or nil until first successful
	// verification. Once set it never changes except through an admin reset.
	Hwid *string
	// Revoked licenses stay invalid until re-created; verification traffic never
	// changes this flag.
	Revoked   bool
	CreatedAt time.Time
	// BoundAt records when Hwid was bound; nil while unbound.
	BoundAt *time.Time
}

// Expired reports whether the license is past its deadline at now (epoch seconds).
// The comparison is strict: a license expiring at exactly now is not yet expired.
func (l *License) Expired(now int64) bool {
	return l.ExpiresAt < now
}

// Bound reports whether a hardware identity is bound.
func (l *License) Bound() bool {
	return l.Hwid != nil
}

// State returns the lifecycle state at now (epoch seconds).
func (l *License) State(now int64) State {
	if l.Revoked || l.Expired(now) {
		return StateInvalid
	}
	if !l.Bound() {
		return StateUnbound
	}
	return StateBoundValid
}
