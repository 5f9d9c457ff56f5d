package repository

import (
	"context"
	"database/sql"
	"errors"

	"license-control-plane/internal/audit/domain"
	"license-control-plane/internal/db/sqlc/gen"
)

type PostgresRepository struct {
	queries *gen.Queries
}

// NewPostgresRepository returns an audit log repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{queries: gen.New(db)}
}

// GetByID returns the audit log for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.AuditLog, error) {
	a, err := r.queries.GetAuditLog(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return genAuditLogToDomain(&a), nil
}

// List returns audit logs newest first, paginated by limit and offset.
// Returns (nil, error) only on database errors.
func (r *PostgresRepository) List(ctx context.Context, limit, offset int32) ([]*domain.AuditLog, error) {
	list, err := r.queries.ListAuditLogs(ctx, gen.ListAuditLogsParams{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	out := make([]*domain.AuditLog, len(list))
	for i := range list {
		out[i] = genAuditLogToDomain(&list[i])
	}
	return out, nil
}

// Create persists the audit log to the database. The audit log must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, a *domain.AuditLog) error {
	meta := sql.NullString{String: a.Metadata, Valid: a.Metadata != ""}
	_, err := r.queries.CreateAuditLog(ctx, gen.CreateAuditLogParams{
		ID: a.ID, Actor: a.Actor, Action: a.Action, Resource: a.Resource,
		Ip: a.IP, Metadata: meta, CreatedAt: a.CreatedAt,
	})
	return err
}

func genAuditLogToDomain(a *gen.AuditLog) *domain.AuditLog {
	if a == nil {
		return nil
	}
	meta := ""
	if a.Metadata.Valid {
		meta = a.Metadata.String
	}
	return &domain.AuditLog{
		ID: a.ID, Actor: a.Actor, Action: a.Action, Resource: a.Resource,
		IP: a.Ip, Metadata: meta, CreatedAt: a.CreatedAt,
	}
}
