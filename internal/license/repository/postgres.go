package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"license-control-plane/internal/db/sqlc/gen"
	"license-control-plane/internal/license/domain"
)

type PostgresRepository struct {
	queries *gen.Queries
}

// NewPostgresRepository returns a license repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{queries: gen.New(db)}
}

// Get returns the license for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*domain.License, error) {
	l, err := r.queries.GetLicense(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return genLicenseToDomain(&l), nil
}

// Upsert creates or fully overwrites the record for id with create-or-overwrite
// semantics: expiry set, hwid cleared, revoked false.
func (r *PostgresRepository) Upsert(ctx context.Context, id string, expiresAt int64) (*domain.License, error) {
	l, err := r.queries.UpsertLicense(ctx, gen.UpsertLicenseParams{
		ID: id, ExpiresAt: expiresAt, CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	return genLicenseToDomain(&l), nil
}

// SetHwid binds hwid via a conditional update against "hwid IS NULL", so two
// concurrent first-use binders serialize in the database and at most one wins.
// Returns true when this call bound the hwid.
func (r *PostgresRepository) SetHwid(ctx context.Context, id, hwid string) (bool, error) {
	n, err := r.queries.BindLicenseHwid(ctx, gen.BindLicenseHwidParams{
		ID:      id,
		Hwid:    sql.NullString{String: hwid, Valid: true},
		BoundAt: sql.NullTime{Time: time.Now().UTC(), Valid: true},
	})
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Revoke marks the license revoked. Unknown ids are a no-op.
func (r *PostgresRepository) Revoke(ctx context.Context, id string) error {
	_, err := r.queries.RevokeLicense(ctx, id)
	return err
}

// ClearHwid removes the bound hwid for id. Unknown ids are a no-op.
func (r *PostgresRepository) ClearHwid(ctx context.Context, id string) error {
	_, err := r.queries.ClearLicenseHwid(ctx, id)
	return err
}

// List returns all license records. Returns (nil, error) only on database errors.
func (r *PostgresRepository) List(ctx context.Context) ([]*domain.License, error) {
	list, err := r.queries.ListLicenses(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.License, len(list))
	for i := range list {
		out[i] = genLicenseToDomain(&list[i])
	}
	return out, nil
}

func genLicenseToDomain(l *gen.License) *domain.License {
	if l == nil {
		return nil
	}
	var hwid *string
	if l.Hwid.Valid {
		hwid = &l.Hwid.String
	}
	var boundAt *time.Time
	if l.BoundAt.Valid {
		boundAt = &l.BoundAt.Time
	}
	return &domain.License{
		ID: l.ID, ExpiresAt: l.ExpiresAt, Hwid: hwid,
		Revoked: l.Revoked, CreatedAt: l.CreatedAt, BoundAt: boundAt,
	}
}
