package domain

// ChangeOp is the kind of row change reported by the database.
type ChangeOp string

const (
	ChangeInsert ChangeOp = "INSERT"
	ChangeUpdate ChangeOp = "UPDATE"
	ChangeDelete ChangeOp = "DELETE"
)

// Tables that publish change notifications.
const (
	TableClients  = "clients"
	TableInvoices = "invoices"
)

// ChangeEvent is a row-level change notification from the database.
type ChangeEvent struct {
	Table string   `json:"table"`
	Op    ChangeOp `json:"op"`
	ID    string   `json:"id"`
}

// StoreEventType classifies what the store publishes to listeners.
type StoreEventType string

const (
	EventClientsChanged  StoreEventType = "clients_changed"
	EventInvoicesChanged StoreEventType = "invoices_changed"
	EventNotification    StoreEventType = "notification"
	EventPickupDue       StoreEventType = "pickup_due"
)

// NotificationLevel is the severity of a user-facing notification.
type NotificationLevel string

const (
	LevelSuccess NotificationLevel = "success"
	LevelError   NotificationLevel = "error"
	LevelInfo    NotificationLevel = "info"
)

// Notification is a user-facing toast message.
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Title   string            `json:"title"`
	Message string            `json:"message"`
}

// StoreEvent is published to connected dashboards after the store state changes.
type StoreEvent struct {
	Type         StoreEventType `json:"type"`
	EntityID     string         `json:"entityId,omitempty"`
	Op           ChangeOp       `json:"op,omitempty"`
	Notification *Notification  `json:"notification,omitempty"`
	Invoices     []Invoice      `json:"invoices,omitempty"`
}
