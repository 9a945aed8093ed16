package repositories

import (
	"context"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
)

// AuditLogReader defines read operations for the audit trail
type AuditLogReader interface {
	// ListAuditLogs returns up to limit entries ordered newest first,
	// starting after cursor (or from the newest entry when cursor is nil).
	ListAuditLogs(ctx context.Context, limit int, cursor *domain.AuditCursor) ([]domain.AuditLogEntry, error)
}

// AuditLogWriter defines write operations for the audit trail
type AuditLogWriter interface {
	// SaveAuditLog appends an entry.
	SaveAuditLog(ctx context.Context, entry domain.AuditLogEntry) error
}

// AuditLogRepositoryFacade combines all audit-related repository interfaces
type AuditLogRepositoryFacade interface {
	AuditLogReader
	AuditLogWriter
}
