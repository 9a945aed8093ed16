package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	"github.com/SscSPs/drycleaner_app/internal/models"
)

// ToModelAuditLog converts a domain AuditLogEntry to a model AuditLog,
// encoding the change snapshot as JSON.
func ToModelAuditLog(d domain.AuditLogEntry) (models.AuditLog, error) {
	var changes []byte
	if d.Changes != nil {
		var err error
		changes, err = json.Marshal(d.Changes)
		if err != nil {
			return models.AuditLog{}, fmt.Errorf("failed to encode audit changes: %w", err)
		}
	}
	return models.AuditLog{
		AuditLogID: d.ID,
		Action:     string(d.Action),
		EntityType: string(d.EntityType),
		EntityID:   d.EntityID,
		ActorPhone: stringPtr(d.ActorPhone),
		ActorName:  stringPtr(d.ActorName),
		Changes:    changes,
		CreatedAt:  d.CreatedAt,
	}, nil
}

// ToDomainAuditLog converts a model AuditLog to a domain AuditLogEntry.
// Undecodable change payloads are surfaced under the "raw" key.
func ToDomainAuditLog(m models.AuditLog) domain.AuditLogEntry {
	entry := domain.AuditLogEntry{
		ID:         m.AuditLogID,
		Action:     domain.AuditAction(m.Action),
		EntityType: domain.EntityType(m.EntityType),
		EntityID:   m.EntityID,
		ActorPhone: derefString(m.ActorPhone),
		ActorName:  derefString(m.ActorName),
		CreatedAt:  m.CreatedAt,
	}
	if len(m.Changes) > 0 {
		if err := json.Unmarshal(m.Changes, &entry.Changes); err != nil {
			entry.Changes = map[string]any{"raw": string(m.Changes)}
		}
	}
	return entry
}
