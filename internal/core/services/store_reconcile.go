package services

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/SscSPs/drycleaner_app/internal/apperrors"
	"github.com/SscSPs/drycleaner_app/internal/core/domain"
)

// refreshClient re-reads one client and patches it into the cache, along
// with the client embedded in cached invoices. A client that no longer
// exists is removed.
func (s *storeService) refreshClient(ctx context.Context, clientID string) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if errors.Is(err, apperrors.ErrNotFound) {
		s.removeClientLocal(clientID)
		return
	}
	if err != nil {
		s.LogWarn(ctx, err, "Failed to refresh client", slog.String("client_id", clientID))
		return
	}
	s.upsertClientLocal(*client)
}

func (s *storeService) upsertClientLocal(client domain.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := slices.IndexFunc(s.clients, func(c domain.Client) bool { return c.ID == client.ID }); i >= 0 {
		s.clients[i] = client
	} else {
		s.clients = append([]domain.Client{client}, s.clients...)
	}
	for i := range s.invoices {
		if s.invoices[i].Client.ID == client.ID {
			s.invoices[i].Client = client
		}
	}
}

// removeClientLocal drops the client and, mirroring the cascade, its invoices.
func (s *storeService) removeClientLocal(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients = slices.DeleteFunc(s.clients, func(c domain.Client) bool { return c.ID == clientID })
	s.invoices = slices.DeleteFunc(s.invoices, func(inv domain.Invoice) bool { return inv.Client.ID == clientID })
}

// refreshInvoice re-reads one invoice and patches it into the cache. When
// the read fails, fallback (if any) is applied to the cached copy instead.
func (s *storeService) refreshInvoice(ctx context.Context, invoiceID string, fallback func(*domain.Invoice)) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if errors.Is(err, apperrors.ErrNotFound) {
		s.removeInvoiceLocal(invoiceID)
		return
	}
	if err != nil {
		s.LogWarn(ctx, err, "Failed to refresh invoice", slog.String("invoice_id", invoiceID))
		if fallback != nil {
			s.patchInvoiceLocal(invoiceID, fallback)
		}
		return
	}
	s.upsertInvoiceLocal(*invoice)
}

// upsertInvoiceLocal replaces a cached invoice or inserts a new one at its
// sorted position. Rows older than the last cached page stay out so that
// the cache remains an exact prefix of the remote ordering.
func (s *storeService) upsertInvoiceLocal(invoice domain.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoices = slices.DeleteFunc(s.invoices, func(inv domain.Invoice) bool { return inv.ID == invoice.ID })

	pos, _ := slices.BinarySearchFunc(s.invoices, invoice, compareInvoices)
	if pos == len(s.invoices) && !s.allInvoicesLoaded {
		return
	}
	s.invoices = slices.Insert(s.invoices, pos, invoice)
}

func (s *storeService) patchInvoiceLocal(invoiceID string, patch func(*domain.Invoice)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.invoices {
		if s.invoices[i].ID == invoiceID {
			patch(&s.invoices[i])
			return
		}
	}
}

func (s *storeService) removeInvoiceLocal(invoiceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoices = slices.DeleteFunc(s.invoices, func(inv domain.Invoice) bool { return inv.ID == invoiceID })
}
