package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/apperrors"
	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// LoadClients replaces the cached clients with the remote set.
func (s *storeService) LoadClients(ctx context.Context) error {
	done := s.begin()
	defer done()
	return s.loadClients(ctx, "load")
}

func (s *storeService) loadClients(ctx context.Context, trigger string) error {
	clients, err := s.clientRepo.FindClients(ctx)
	if err != nil {
		return s.fail(ctx, "load_clients", "Error loading clients", fmt.Errorf("failed to load clients: %w", err))
	}
	storeReloads.WithLabelValues(domain.TableClients, trigger).Inc()

	s.mu.Lock()
	s.clients = clients
	s.mu.Unlock()

	s.LogDebug(ctx, "Clients loaded", slog.Int("count", len(clients)), slog.String("trigger", trigger))
	s.publisher.Publish(domain.StoreEvent{Type: domain.EventClientsChanged})
	return nil
}

// LoadInvoices replaces the cached invoices with the first page and resets
// pagination.
func (s *storeService) LoadInvoices(ctx context.Context) error {
	done := s.begin()
	defer done()
	return s.loadInvoices(ctx, "load")
}

func (s *storeService) loadInvoices(ctx context.Context, trigger string) error {
	page, err := s.invoiceRepo.ListInvoices(ctx, domain.InvoiceFilter{}, s.pageSize, 0)
	if err != nil {
		return s.fail(ctx, "load_invoices", "Error loading invoices", fmt.Errorf("failed to load invoices: %w", err))
	}
	storeReloads.WithLabelValues(domain.TableInvoices, trigger).Inc()

	s.mu.Lock()
	s.invoices = page
	s.page = 1
	s.allInvoicesLoaded = len(page) < s.pageSize
	s.generation++
	s.mu.Unlock()

	s.LogDebug(ctx, "Invoices loaded", slog.Int("count", len(page)), slog.String("trigger", trigger))
	s.publisher.Publish(domain.StoreEvent{Type: domain.EventInvoicesChanged})
	return nil
}

// LoadMoreInvoices appends the next page. The isLoadingMore flag is checked
// and set under the lock, so concurrent callers issue a single fetch.
func (s *storeService) LoadMoreInvoices(ctx context.Context) error {
	s.mu.Lock()
	if s.isLoadingMore || s.allInvoicesLoaded {
		s.mu.Unlock()
		return nil
	}
	s.isLoadingMore = true
	// The cache mirrors the head of the remote ordering, so its length is
	// the offset of the next unseen row.
	offset := len(s.invoices)
	gen := s.generation
	s.mu.Unlock()

	done := s.begin()
	defer done()

	page, err := s.invoiceRepo.ListInvoices(ctx, domain.InvoiceFilter{}, s.pageSize, offset)

	s.mu.Lock()
	s.isLoadingMore = false
	stale := gen != s.generation
	if err == nil && !stale {
		s.invoices = mergeInvoices(s.invoices, page)
		s.page++
		s.allInvoicesLoaded = len(page) < s.pageSize
	}
	s.mu.Unlock()

	if err != nil {
		return s.fail(ctx, "load_more_invoices", "Error loading invoices", fmt.Errorf("failed to load more invoices: %w", err))
	}
	if stale {
		s.LogDebug(ctx, "Discarding stale invoice page", slog.Int("offset", offset))
		return nil
	}
	storeReloads.WithLabelValues(domain.TableInvoices, "load_more").Inc()
	s.publisher.Publish(domain.StoreEvent{Type: domain.EventInvoicesChanged})
	return nil
}

// LoadData reloads clients and invoices concurrently.
func (s *storeService) LoadData(ctx context.Context) error {
	done := s.begin()
	defer done()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.loadClients(gctx, "load_data") })
	g.Go(func() error { return s.loadInvoices(gctx, "load_data") })
	return g.Wait()
}

// SearchInvoicesDB returns every invoice whose id contains query or whose
// client's name or phone contains it, case-insensitively, newest first.
// The cached page is left untouched.
func (s *storeService) SearchInvoicesDB(ctx context.Context, query string) ([]domain.Invoice, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Invoice{}, nil
	}

	clientIDs, err := s.clientRepo.FindClientIDsMatching(ctx, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to search clients", slog.String("query", query))
		return nil, fmt.Errorf("failed to search invoices: %w", err)
	}

	filter := domain.InvoiceFilter{IDContains: query}
	if len(clientIDs) > 0 {
		filter.ClientIDs = clientIDs
	}
	invoices, err := s.fetchAll(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to search invoices", slog.String("query", query))
		return nil, fmt.Errorf("failed to search invoices: %w", err)
	}
	storeOperations.WithLabelValues("search_invoices", "ok").Inc()
	return invoices, nil
}

// FetchInvoicesForDateRange returns every invoice created within [from, to].
func (s *storeService) FetchInvoicesForDateRange(ctx context.Context, from, to time.Time) ([]domain.Invoice, error) {
	if from.IsZero() || to.IsZero() {
		return nil, apperrors.Validation("both from and to are required")
	}
	if to.Before(from) {
		return nil, apperrors.Validation("from must not be after to")
	}

	invoices, err := s.fetchAll(ctx, domain.InvoiceFilter{CreatedFrom: &from, CreatedTo: &to})
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch invoices for range",
			slog.Time("from", from), slog.Time("to", to))
		return nil, fmt.Errorf("failed to fetch invoices for date range: %w", err)
	}
	return invoices, nil
}

// GetClientHistory fetches a client and every invoice it owns, bounded by
// ClientDetailTimeout.
func (s *storeService) GetClientHistory(ctx context.Context, clientID string) (*domain.Client, []domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, ClientDetailTimeout)
	defer cancel()

	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch client %s: %w", clientID, err)
	}
	invoices, err := s.fetchAll(ctx, domain.InvoiceFilter{ClientID: clientID})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch invoices of client %s: %w", clientID, err)
	}
	return client, invoices, nil
}

// fetchAll pages through filter in bulk pages until a short page, then
// deduplicates by id and sorts newest first.
func (s *storeService) fetchAll(ctx context.Context, filter domain.InvoiceFilter) ([]domain.Invoice, error) {
	var all []domain.Invoice
	for offset := 0; ; offset += s.bulkSize {
		page, err := s.invoiceRepo.ListInvoices(ctx, filter, s.bulkSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < s.bulkSize {
			break
		}
	}

	seen := make(map[string]struct{}, len(all))
	out := make([]domain.Invoice, 0, len(all))
	for _, inv := range all {
		if _, ok := seen[inv.ID]; ok {
			continue
		}
		seen[inv.ID] = struct{}{}
		out = append(out, inv)
	}
	slices.SortStableFunc(out, compareInvoices)
	return out, nil
}

// compareInvoices orders newest first, then by id descending.
func compareInvoices(a, b domain.Invoice) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(b.ID, a.ID)
}

// mergeInvoices appends page to current, skipping ids already present.
func mergeInvoices(current, page []domain.Invoice) []domain.Invoice {
	seen := make(map[string]struct{}, len(current))
	for _, inv := range current {
		seen[inv.ID] = struct{}{}
	}
	for _, inv := range page {
		if _, ok := seen[inv.ID]; ok {
			continue
		}
		seen[inv.ID] = struct{}{}
		current = append(current, inv)
	}
	return current
}
