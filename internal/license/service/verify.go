// Package service implements the license verification and administration engines.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"license-control-plane/internal/license/domain"
	"license-control-plane/internal/security"
)

// Sentinel errors; handlers map them to HTTP statuses. Business outcomes
// (not found, expired, revoked, hwid mismatch) are verdict values, not errors,
// so the API never tells a probing client why a license is invalid.
var (
	// ErrRateLimited means the caller exceeded its request window. Distinct from a
	// negative verdict: the caller should retry later.
	ErrRateLimited = errors.New("rate limited")
	// ErrStoreUnavailable means the license store could not be reached. Never
	// reported as "license invalid".
	ErrStoreUnavailable = errors.New("license store unavailable")
)

// Verdict is the signed outcome of a verification request.
type Verdict struct {
	Valid     bool
	ExpiresAt int64
	Signature string
}

// Governor admits or rejects a request from a caller identity. Checked before any
// store access, so rejected callers cost no database work.
type Governor interface {
	Admit(callerID string) bool
}

// Repository is the minimal license repository needed by the verify service.
type Repository interface {
	Get(ctx context.Context, id string) (*domain.License, error)
	SetHwid(ctx context.Context, id, hwid string) (bool, error)
}

// VerifyService orchestrates a verify request: rate admission, record read,
// state rules with first-use hwid binding, and verdict signing.
type VerifyService struct {
	repo     Repository
	governor Governor
	signer   *security.Signer
	nowF     func() time.Time
}

// NewVerifyService returns a VerifyService with the given dependencies.
func NewVerifyService(repo Repository, governor Governor, signer *security.Signer) *VerifyService {
	return &VerifyService{
		repo:     repo,
		governor: governor,
		signer:   signer,
		nowF:     time.Now,
	}
}

// Verify applies the license state rules for licenseID presented by hwid and
// returns a signed verdict. Every return path carries a signature over the
// outgoing (valid, expiresAt) pair; a missing license is a normal negative
// verdict with expiry 0, indistinguishable from other invalid outcomes.
//
// Returns ErrRateLimited when callerID exceeds its window and a wrapped
// ErrStoreUnavailable on storage failures.
func (s *VerifyService) Verify(ctx context.Context, licenseID, hwid, callerID string) (*Verdict, error) {
	if !s.governor.Admit(callerID) {
		return nil, ErrRateLimited
	}

	lic, err := s.repo.Get(ctx, licenseID)
	if err != nil {
		return nil, fmt.Errorf("%w: get %q: %v", ErrStoreUnavailable, licenseID, err)
	}
	if lic == nil {
		return s.verdict(false, 0), nil
	}

	now := s.nowF().Unix()
	if lic.Revoked || lic.Expired(now) {
		return s.verdict(false, lic.ExpiresAt), nil
	}

	if !lic.Bound() {
		bound, err := s.repo.SetHwid(ctx, licenseID, hwid)
		if err != nil {
			return nil, fmt.Errorf("%w: bind %q: %v", ErrStoreUnavailable, licenseID, err)
		}
		if bound {
			return s.verdict(true, lic.ExpiresAt), nil
		}
		// Lost the first-use race: a concurrent binder won between the read and
		// the conditional update. Re-read and fall through to the match check.
		lic, err = s.repo.Get(ctx, licenseID)
		if err != nil {
			return nil, fmt.Errorf("%w: reread %q: %v", ErrStoreUnavailable, licenseID, err)
		}
		if lic == nil {
			return s.verdict(false, 0), nil
		}
	}

	if lic.Hwid == nil || *lic.Hwid != hwid {
		return s.verdict(false, lic.ExpiresAt), nil
	}
	return s.verdict(true, lic.ExpiresAt), nil
}

func (s *VerifyService) verdict(valid bool, expiresAt int64) *Verdict {
	return &Verdict{
		Valid:     valid,
		ExpiresAt: expiresAt,
		Signature: s.signer.Sign(valid, expiresAt),
	}
}
