package models

import "time"

// AuditLog mirrors a row of the audit_logs table. Changes holds the raw JSONB.
type AuditLog struct {
	AuditLogID string    `db:"id"`
	Action     string    `db:"action"`
	EntityType string    `db:"entity_type"`
	EntityID   string    `db:"entity_id"`
	ActorPhone *string   `db:"actor_phone"`
	ActorName  *string   `db:"actor_name"`
	Changes    []byte    `db:"changes"`
	CreatedAt  time.Time `db:"created_at"`
}
