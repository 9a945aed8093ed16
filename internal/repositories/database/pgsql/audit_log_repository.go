package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	portsrepo "github.com/SscSPs/drycleaner_app/internal/core/ports/repositories"
	"github.com/SscSPs/drycleaner_app/internal/models"
	"github.com/SscSPs/drycleaner_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAuditLogRepository stores the append-only audit trail.
type PgxAuditLogRepository struct {
	db *pgxpool.Pool
}

func newPgxAuditLogRepository(db *pgxpool.Pool) portsrepo.AuditLogRepositoryFacade {
	return &PgxAuditLogRepository{db: db}
}

var _ portsrepo.AuditLogRepositoryFacade = (*PgxAuditLogRepository)(nil)

// SaveAuditLog appends entry. A zero CreatedAt defaults to now.
func (r *PgxAuditLogRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLogEntry) error {
	m, err := mapping.ToModelAuditLog(entry)
	if err != nil {
		return err
	}
	var createdAt any
	if !m.CreatedAt.IsZero() {
		createdAt = m.CreatedAt
	}

	query := `
		INSERT INTO audit_logs (action, entity_type, entity_id, actor_phone, actor_name, changes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, NOW()));
	`
	_, err = r.db.Exec(ctx, query, m.Action, m.EntityType, m.EntityID, m.ActorPhone, m.ActorName, m.Changes, createdAt)
	if err != nil {
		return fmt.Errorf("failed to save audit log for %s %s: %w", m.EntityType, m.EntityID, translateError(err))
	}
	return nil
}

// ListAuditLogs returns up to limit entries newest first, resuming strictly
// after cursor when one is given.
func (r *PgxAuditLogRepository) ListAuditLogs(ctx context.Context, limit int, cursor *domain.AuditCursor) ([]domain.AuditLogEntry, error) {
	query := `
		SELECT id::text, action, entity_type, entity_id, actor_phone, actor_name, changes, created_at
		FROM audit_logs
		ORDER BY created_at DESC, id DESC
		LIMIT $1;
	`
	args := []any{limit}
	if cursor != nil {
		query = `
		SELECT id::text, action, entity_type, entity_id, actor_phone, actor_name, changes, created_at
		FROM audit_logs
		WHERE (created_at, id) < ($2, $3::uuid)
		ORDER BY created_at DESC, id DESC
		LIMIT $1;
	`
		args = append(args, cursor.CreatedAt, cursor.ID)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", translateError(err))
	}
	defer rows.Close()

	entries := []domain.AuditLogEntry{}
	for rows.Next() {
		var m models.AuditLog
		if err := rows.Scan(&m.AuditLogID, &m.Action, &m.EntityType, &m.EntityID, &m.ActorPhone, &m.ActorName, &m.Changes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit log row: %w", err)
		}
		entries = append(entries, mapping.ToDomainAuditLog(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit log rows: %w", translateError(err))
	}
	return entries, nil
}
