package domain

import "time"

// AuditAction is what happened to an entity.
type AuditAction string

const (
	AuditCreate       AuditAction = "create"
	AuditUpdate       AuditAction = "update"
	AuditDelete       AuditAction = "delete"
	AuditStatusUpdate AuditAction = "status_update"
)

// EntityType names the kind of entity an audit entry refers to.
type EntityType string

const (
	EntityInvoice EntityType = "invoice"
	EntityClient  EntityType = "client"
	EntityUser    EntityType = "user"
)

// AuditLogEntry is an append-only record of who changed what and when.
type AuditLogEntry struct {
	ID         string         `json:"id"`
	Action     AuditAction    `json:"action"`
	EntityType EntityType     `json:"entityType"`
	EntityID   string         `json:"entityId"`
	ActorPhone string         `json:"actorPhone,omitempty"`
	ActorName  string         `json:"actorName,omitempty"`
	Changes    map[string]any `json:"changes,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// NewAuditLogEntry builds an entry attributed to actor.
func NewAuditLogEntry(action AuditAction, entity EntityType, entityID string, actor Actor, changes map[string]any) AuditLogEntry {
	return AuditLogEntry{
		Action:     action,
		EntityType: entity,
		EntityID:   entityID,
		ActorPhone: actor.Phone,
		ActorName:  actor.Name,
		Changes:    changes,
	}
}

// AuditCursor marks the last entry of a page; the next page starts strictly
// after it in (createdAt desc, id desc) order.
type AuditCursor struct {
	CreatedAt time.Time
	ID        string
}
