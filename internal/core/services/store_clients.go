package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
)

// AddClient creates a client and prepends it to the cache.
func (s *storeService) AddClient(ctx context.Context, client domain.NewClient) (*domain.Client, error) {
	const op, failTitle = "add_client", "Error adding client"

	client.Phone = domain.NormalizePhone(client.Phone)
	if err := client.Validate(); err != nil {
		return nil, s.fail(ctx, op, failTitle, err)
	}

	done := s.begin()
	defer done()

	created, err := s.clientRepo.CreateClient(ctx, client)
	if err != nil {
		return nil, s.fail(ctx, op, failTitle, fmt.Errorf("failed to add client: %w", err))
	}
	s.upsertClientLocal(*created)

	s.submitAudit(ctx, domain.AuditCreate, domain.EntityClient, created.ID, map[string]any{
		"name":  created.Name,
		"phone": created.Phone,
	})
	s.LogInfo(ctx, "Client created", slog.String("client_id", created.ID))
	s.succeed(op, "Client added successfully!", fmt.Sprintf("%s has been added to your client list.", created.Name))
	s.publisher.Publish(domain.StoreEvent{Type: domain.EventClientsChanged, EntityID: created.ID, Op: domain.ChangeInsert})
	return created, nil
}

// UpdateClient applies a partial update and patches the cache with the
// stored row.
func (s *storeService) UpdateClient(ctx context.Context, clientID string, update domain.ClientUpdate) error {
	const op, failTitle = "update_client", "Error updating client"

	if update.Phone != nil {
		phone := domain.NormalizePhone(*update.Phone)
		update.Phone = &phone
	}
	if err := update.Validate(); err != nil {
		return s.fail(ctx, op, failTitle, err)
	}

	done := s.begin()
	defer done()

	updated, err := s.clientRepo.UpdateClient(ctx, clientID, update)
	if err != nil {
		return s.fail(ctx, op, failTitle, fmt.Errorf("failed to update client: %w", err))
	}
	s.upsertClientLocal(*updated)

	s.submitAudit(ctx, domain.AuditUpdate, domain.EntityClient, clientID, update.Changes())
	s.succeed(op, "Client updated successfully!", "")
	s.publisher.Publish(domain.StoreEvent{Type: domain.EventClientsChanged, EntityID: clientID, Op: domain.ChangeUpdate})
	return nil
}

// DeleteClient hard deletes a client. The database cascades to its
// invoices and the cache mirrors that.
func (s *storeService) DeleteClient(ctx context.Context, clientID string) error {
	const op, failTitle = "delete_client", "Error deleting client"

	done := s.begin()
	defer done()

	if err := s.clientRepo.DeleteClient(ctx, clientID); err != nil {
		return s.fail(ctx, op, failTitle, fmt.Errorf("failed to delete client: %w", err))
	}
	s.removeClientLocal(clientID)

	s.submitAudit(ctx, domain.AuditDelete, domain.EntityClient, clientID, nil)
	s.LogInfo(ctx, "Client deleted", slog.String("client_id", clientID))
	s.succeed(op, "Client deleted successfully!", "")
	s.publisher.Publish(domain.StoreEvent{Type: domain.EventClientsChanged, EntityID: clientID, Op: domain.ChangeDelete})
	return nil
}
