package services_test

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/apperrors"
	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	portsrepo "github.com/SscSPs/drycleaner_app/internal/core/ports/repositories"
	"github.com/google/uuid"
)

// memoryDB is an in-memory stand-in for the clients/invoices tables with
// the same ordering and cascade rules as the Postgres schema.
type memoryDB struct {
	mu       sync.Mutex
	clients  map[string]domain.Client
	invoices map[string]domain.Invoice

	listCalls  int
	createInv  int
	schemaErr  error
	itemsErr   error
	clientsErr error
	// listWaitsForCancel makes ListInvoices block until its ctx ends.
	listWaitsForCancel bool
	beforeList         func()
	events             chan domain.ChangeEvent
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		clients:  map[string]domain.Client{},
		invoices: map[string]domain.Invoice{},
		events:   make(chan domain.ChangeEvent, 16),
	}
}

func (db *memoryDB) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ClientRepo:  db,
		InvoiceRepo: db,
		Schema:      db,
		Changes:     db,
	}
}

var (
	_ portsrepo.ClientRepositoryFacade  = (*memoryDB)(nil)
	_ portsrepo.InvoiceRepositoryFacade = (*memoryDB)(nil)
	_ portsrepo.SchemaChecker           = (*memoryDB)(nil)
	_ portsrepo.ChangeFeed              = (*memoryDB)(nil)
)

func (db *memoryDB) seedClient(name, phone string) domain.Client {
	db.mu.Lock()
	defer db.mu.Unlock()
	c := domain.Client{ID: uuid.NewString(), Name: name, Phone: phone}
	db.clients[c.ID] = c
	return c
}

func (db *memoryDB) seedInvoice(id string, client domain.Client, created time.Time, items ...domain.InvoiceItem) domain.Invoice {
	db.mu.Lock()
	defer db.mu.Unlock()
	if len(items) == 0 {
		items = []domain.InvoiceItem{{Description: "Shirt", Quantity: 1}}
	}
	inv := domain.Invoice{ID: id, Client: client, Items: items, Timestamps: domain.Timestamps{CreatedAt: created}}
	inv.Normalize()
	db.invoices[id] = inv
	return inv
}

func (db *memoryDB) put(inv domain.Invoice) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.invoices[inv.ID] = inv
}

func (db *memoryDB) hasInvoice(id string) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	_, ok := db.invoices[id]
	return ok
}

func (db *memoryDB) client(id string) domain.Client {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.clients[id]
}

func (db *memoryDB) invoice(id string) domain.Invoice {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.invoices[id]
}

func (db *memoryDB) calls() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.listCalls
}

// --- clients ---

func (db *memoryDB) FindClients(ctx context.Context) ([]domain.Client, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.clientsErr != nil {
		return nil, db.clientsErr
	}
	out := make([]domain.Client, 0, len(db.clients))
	for _, c := range db.clients {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b domain.Client) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

func (db *memoryDB) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	c, ok := db.clients[clientID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (db *memoryDB) FindClientIDsMatching(ctx context.Context, query string) ([]string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	q := strings.ToLower(query)
	var ids []string
	for _, c := range db.clients {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Phone), q) {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

func (db *memoryDB) CreateClient(ctx context.Context, nc domain.NewClient) (*domain.Client, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, c := range db.clients {
		if c.Phone == nc.Phone {
			return nil, fmt.Errorf("%w: phone %s", apperrors.ErrDuplicate, nc.Phone)
		}
	}
	c := domain.Client{ID: uuid.NewString(), Name: nc.Name, Phone: nc.Phone, Address: nc.Address, VisitCount: nc.VisitCount}
	db.clients[c.ID] = c
	return &c, nil
}

func (db *memoryDB) UpdateClient(ctx context.Context, clientID string, update domain.ClientUpdate) (*domain.Client, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	c, ok := db.clients[clientID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	update.Apply(&c, time.Now())
	db.clients[clientID] = c
	return &c, nil
}

func (db *memoryDB) DeleteClient(ctx context.Context, clientID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.clients[clientID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(db.clients, clientID)
	for id, inv := range db.invoices {
		if inv.Client.ID == clientID {
			delete(db.invoices, id)
		}
	}
	return nil
}

func (db *memoryDB) IncrementVisit(ctx context.Context, clientID string, at time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	c, ok := db.clients[clientID]
	if !ok {
		return apperrors.ErrNotFound
	}
	c.VisitCount++
	c.LastVisit = at
	db.clients[clientID] = c
	return nil
}

// --- invoices ---

func matches(inv domain.Invoice, f domain.InvoiceFilter) bool {
	var alternatives []bool
	if f.IDContains != "" {
		alternatives = append(alternatives, strings.Contains(strings.ToLower(inv.ID), strings.ToLower(f.IDContains)))
	}
	if f.ClientIDs != nil {
		alternatives = append(alternatives, slices.Contains(f.ClientIDs, inv.Client.ID))
	}
	if len(alternatives) > 0 && !slices.Contains(alternatives, true) {
		return false
	}
	if f.ClientID != "" && inv.Client.ID != f.ClientID {
		return false
	}
	if f.CreatedFrom != nil && inv.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedTo != nil && inv.CreatedAt.After(*f.CreatedTo) {
		return false
	}
	return true
}

func (db *memoryDB) ListInvoices(ctx context.Context, filter domain.InvoiceFilter, limit int, offset int) ([]domain.Invoice, error) {
	db.mu.Lock()
	db.listCalls++
	hook := db.beforeList
	wait := db.listWaitsForCancel
	db.mu.Unlock()
	if hook != nil {
		hook()
	}
	if wait {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	var all []domain.Invoice
	for _, inv := range db.invoices {
		if matches(inv, filter) {
			inv.Client = db.clients[inv.Client.ID]
			all = append(all, inv)
		}
	}
	slices.SortFunc(all, func(a, b domain.Invoice) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	if offset >= len(all) {
		return []domain.Invoice{}, nil
	}
	end := min(offset+limit, len(all))
	return slices.Clone(all[offset:end]), nil
}

func (db *memoryDB) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	inv, ok := db.invoices[invoiceID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	inv.Client = db.clients[inv.Client.ID]
	return &inv, nil
}

func (db *memoryDB) CreateInvoice(ctx context.Context, invoice domain.Invoice) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.createInv++
	if _, ok := db.invoices[invoice.ID]; ok {
		return apperrors.ErrDuplicate
	}
	if _, ok := db.clients[invoice.Client.ID]; !ok {
		return apperrors.Validation("referenced record does not exist")
	}
	if invoice.CreatedAt.IsZero() {
		invoice.CreatedAt = time.Now()
	}
	invoice.Items = nil
	db.invoices[invoice.ID] = invoice
	return nil
}

func (db *memoryDB) CreateInvoiceItems(ctx context.Context, invoiceID string, items []domain.InvoiceItem) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.itemsErr != nil {
		return db.itemsErr
	}
	inv := db.invoices[invoiceID]
	inv.Items = append(inv.Items, items...)
	db.invoices[invoiceID] = inv
	return nil
}

func (db *memoryDB) UpdateInvoice(ctx context.Context, invoiceID string, update domain.InvoiceUpdate) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	inv, ok := db.invoices[invoiceID]
	if !ok {
		return apperrors.ErrNotFound
	}
	// All or nothing, like the transactional repository.
	if update.Items != nil && db.itemsErr != nil {
		return db.itemsErr
	}
	update.Apply(&inv, time.Now())
	db.invoices[invoiceID] = inv
	return nil
}

func (db *memoryDB) DeleteInvoice(ctx context.Context, invoiceID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.invoices[invoiceID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(db.invoices, invoiceID)
	return nil
}

// --- system ---

func (db *memoryDB) CheckSchema(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.schemaErr
}

func (db *memoryDB) Listen(ctx context.Context, handler func(domain.ChangeEvent)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-db.events:
			handler(ev)
		}
	}
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.StoreEvent
}

func (p *recordingPublisher) Publish(ev domain.StoreEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) notifications(level domain.NotificationLevel) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var titles []string
	for _, ev := range p.events {
		if ev.Notification != nil && ev.Notification.Level == level {
			titles = append(titles, ev.Notification.Title)
		}
	}
	return titles
}

// recordingAudit keeps every submitted entry.
type recordingAudit struct {
	mu      sync.Mutex
	entries []domain.AuditLogEntry
}

func (a *recordingAudit) Submit(entry domain.AuditLogEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

func (a *recordingAudit) Close(ctx context.Context) error { return nil }

func (a *recordingAudit) all() []domain.AuditLogEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.entries)
}
