package services

import (
	"context"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
)

// StoreReaderSvc exposes the in-memory state of the store.
type StoreReaderSvc interface {
	// State returns a snapshot of the loading/error/pagination flags.
	State() domain.StoreState

	// Clients returns a copy of the loaded clients, newest first.
	Clients() []domain.Client

	// Invoices returns a copy of the paged-in invoices, newest first.
	Invoices() []domain.Invoice

	// GetPickupNotifications returns invoices due for pickup this minute.
	GetPickupNotifications() []domain.Invoice
}

// StoreLoaderSvc defines the fetch operations of the store.
type StoreLoaderSvc interface {
	// LoadClients replaces the local clients with the remote set.
	LoadClients(ctx context.Context) error

	// LoadInvoices replaces the local invoices with the first page.
	LoadInvoices(ctx context.Context) error

	// LoadMoreInvoices appends the next page. Concurrent calls while a page is
	// in flight are no-ops.
	LoadMoreInvoices(ctx context.Context) error

	// LoadData reloads clients and invoices concurrently.
	LoadData(ctx context.Context) error

	// SearchInvoicesDB searches all invoices by id, client name or phone
	// without touching the paged collection.
	SearchInvoicesDB(ctx context.Context, query string) ([]domain.Invoice, error)

	// FetchInvoicesForDateRange returns every invoice created within [from, to].
	FetchInvoicesForDateRange(ctx context.Context, from, to time.Time) ([]domain.Invoice, error)

	// GetClientHistory fetches a client and all of its invoices.
	GetClientHistory(ctx context.Context, clientID string) (*domain.Client, []domain.Invoice, error)
}

// ClientWriterSvc defines client mutations.
type ClientWriterSvc interface {
	AddClient(ctx context.Context, client domain.NewClient) (*domain.Client, error)
	UpdateClient(ctx context.Context, clientID string, update domain.ClientUpdate) error
	DeleteClient(ctx context.Context, clientID string) error
}

// InvoiceWriterSvc defines invoice mutations.
type InvoiceWriterSvc interface {
	AddInvoice(ctx context.Context, invoice domain.Invoice) (*domain.Invoice, error)
	UpdateInvoice(ctx context.Context, invoiceID string, update domain.InvoiceUpdate) error
	DeleteInvoice(ctx context.Context, invoiceID string) error
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus) error
	UpdateInvoicePaid(ctx context.Context, invoiceID string, paid bool) error
	UpdateInvoicePaymentMethod(ctx context.Context, invoiceID string, method domain.PaymentMethod) error
}

// StoreLifecycleSvc manages setup, subscriptions and the fallback refresher.
type StoreLifecycleSvc interface {
	// CheckDatabaseSetup probes the schema and records databaseReady.
	CheckDatabaseSetup(ctx context.Context) bool

	// InitializeDatabase checks setup, loads data and subscribes to changes.
	InitializeDatabase(ctx context.Context) error

	SubscribeToRealTimeUpdates(ctx context.Context) error
	UnsubscribeFromRealTimeUpdates()

	// StartPeriodicRefresh re-runs InitializeDatabase every interval until ctx ends.
	StartPeriodicRefresh(ctx context.Context, interval time.Duration)

	ClearError()
	Reset()
}

// StoreSvcFacade combines all store interfaces
type StoreSvcFacade interface {
	StoreReaderSvc
	StoreLoaderSvc
	ClientWriterSvc
	InvoiceWriterSvc
	StoreLifecycleSvc
}

// EventPublisher receives store events for fan-out to dashboards.
type EventPublisher interface {
	Publish(event domain.StoreEvent)
}
