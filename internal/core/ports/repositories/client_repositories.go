package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClients retrieves all clients, newest first.
	FindClients(ctx context.Context) ([]domain.Client, error)

	// FindClientByID retrieves a specific client by its ID.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// FindClientIDsMatching returns the ids of clients whose name or phone
	// contains query, case-insensitively.
	FindClientIDsMatching(ctx context.Context, query string) ([]string, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	// CreateClient persists a new client and returns the stored row.
	CreateClient(ctx context.Context, client domain.NewClient) (*domain.Client, error)

	// UpdateClient applies a partial update and returns the stored row.
	UpdateClient(ctx context.Context, clientID string, update domain.ClientUpdate) (*domain.Client, error)

	// DeleteClient hard deletes a client. Its invoices cascade.
	DeleteClient(ctx context.Context, clientID string) error

	// IncrementVisit bumps visit_count by one and sets last_visit.
	IncrementVisit(ctx context.Context, clientID string, at time.Time) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
