package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"license-control-plane/internal/license/domain"
)

// ErrInvalidLicenseID is returned by admin mutations for an empty license id.
var ErrInvalidLicenseID = errors.New("license id is required")

// AdminRepository is the license repository surface needed by the admin service.
type AdminRepository interface {
	Upsert(ctx context.Context, id string, expiresAt int64) (*domain.License, error)
	Revoke(ctx context.Context, id string) error
	ClearHwid(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.License, error)
}

// AdminService applies admin mutations to the license store. Authorization is the
// transport's responsibility and happens before any of these methods run.
type AdminService struct {
	repo AdminRepository
}

// NewAdminService returns an AdminService using repo for persistence.
func NewAdminService(repo AdminRepository) *AdminService {
	return &AdminService{repo: repo}
}

// Create creates or overwrites the license: expiry set, hwid cleared, revoked
// false. Overwriting is the only path back from revocation.
func (s *AdminService) Create(ctx context.Context, licenseID string, expiresAt int64) (*domain.License, error) {
	licenseID = strings.TrimSpace(licenseID)
	if licenseID == "" {
		return nil, ErrInvalidLicenseID
	}
	lic, err := s.repo.Upsert(ctx, licenseID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("%w: upsert %q: %v", ErrStoreUnavailable, licenseID, err)
	}
	return lic, nil
}

// Revoke marks the license revoked. Revoking an unknown license is a no-op so the
// response does not reveal whether the id existed.
func (s *AdminService) Revoke(ctx context.Context, licenseID string) error {
	licenseID = strings.TrimSpace(licenseID)
	if licenseID == "" {
		return ErrInvalidLicenseID
	}
	if err := s.repo.Revoke(ctx, licenseID); err != nil {
		return fmt.Errorf("%w: revoke %q: %v", ErrStoreUnavailable, licenseID, err)
	}
	return nil
}

// ResetHwid clears the bound hwid, re-opening first-use binding.
func (s *AdminService) ResetHwid(ctx context.Context, licenseID string) error {
	licenseID = strings.TrimSpace(licenseID)
	if licenseID == "" {
		return ErrInvalidLicenseID
	}
	if err := s.repo.ClearHwid(ctx, licenseID); err != nil {
		return fmt.Errorf("%w: clear hwid %q: %v", ErrStoreUnavailable, licenseID, err)
	}
	return nil
}

// List returns every license record.
func (s *AdminService) List(ctx context.Context) ([]*domain.License, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %v", ErrStoreUnavailable, err)
	}
	return list, nil
}
