package services

import (
	"context"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
)

// AuditSvc accepts audit entries for background persistence. Submit never
// blocks and never fails the caller.
type AuditSvc interface {
	Submit(entry domain.AuditLogEntry)

	// Close stops accepting entries and waits for queued ones to be written
	// or for ctx to end.
	Close(ctx context.Context) error
}
