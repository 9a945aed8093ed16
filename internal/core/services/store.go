package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	portsrepo "github.com/SscSPs/drycleaner_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/drycleaner_app/internal/core/ports/services"
	"github.com/SscSPs/drycleaner_app/internal/middleware"
)

const (
	// InvoicePageSize is the dashboard page size of LoadInvoices/LoadMoreInvoices.
	InvoicePageSize = 50
	// BulkPageSize is the page size of exhaustive fetches (search, date range).
	BulkPageSize = 1000
	// ClientDetailTimeout bounds GetClientHistory.
	ClientDetailTimeout = 5 * time.Second
	// DefaultRefreshInterval is the fallback full-reload period.
	DefaultRefreshInterval = 5 * time.Minute
)

// storeService is the in-memory mirror of the clients and invoices tables
// and the only write path to them.
type storeService struct {
	BaseService
	clientRepo  portsrepo.ClientRepositoryFacade
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	schema      portsrepo.SchemaChecker
	changes     portsrepo.ChangeFeed
	audit       portssvc.AuditSvc
	publisher   portssvc.EventPublisher
	logger      *slog.Logger
	now         func() time.Time
	pageSize    int
	bulkSize    int

	mu                sync.RWMutex
	clients           []domain.Client
	invoices          []domain.Invoice
	loadingCount      int
	errMsg            string
	isInitialized     bool
	databaseReady     bool
	page              int
	allInvoicesLoaded bool
	isLoadingMore     bool
	// generation changes whenever the invoice page is reset so that an
	// in-flight LoadMoreInvoices discards a stale page.
	generation uint64

	subMu     sync.Mutex
	cancelSub context.CancelFunc
	subDone   chan struct{}
}

// StoreOption is a functional option for configuring the store
type StoreOption func(*storeService)

// WithEventPublisher sets where change events and notifications are sent.
func WithEventPublisher(p portssvc.EventPublisher) StoreOption {
	return func(s *storeService) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithAuditQueue sets the audit sink.
func WithAuditQueue(a portssvc.AuditSvc) StoreOption {
	return func(s *storeService) {
		s.audit = a
	}
}

// WithStoreLogger sets the logger used by background work.
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *storeService) {
		s.logger = logger
	}
}

// WithClock overrides time.Now, in business-local time.
func WithClock(now func() time.Time) StoreOption {
	return func(s *storeService) {
		s.now = now
	}
}

// WithPageSizes overrides the dashboard and bulk page sizes.
func WithPageSizes(page, bulk int) StoreOption {
	return func(s *storeService) {
		if page > 0 {
			s.pageSize = page
		}
		if bulk > 0 {
			s.bulkSize = bulk
		}
	}
}

// NewStoreService creates the synchronization store over repos.
func NewStoreService(repos portsrepo.RepositoryProvider, options ...StoreOption) portssvc.StoreSvcFacade {
	s := &storeService{
		clientRepo:  repos.ClientRepo,
		invoiceRepo: repos.InvoiceRepo,
		schema:      repos.Schema,
		changes:     repos.Changes,
		publisher:   noopPublisher{},
		logger:      slog.Default(),
		now:         time.Now,
		pageSize:    InvoicePageSize,
		bulkSize:    BulkPageSize,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.StoreSvcFacade = (*storeService)(nil)

type noopPublisher struct{}

func (noopPublisher) Publish(domain.StoreEvent) {}

// State returns a snapshot of the store flags.
func (s *storeService) State() domain.StoreState {
	s.subMu.Lock()
	subscribed := s.cancelSub != nil
	s.subMu.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.StoreState{
		Loading:           s.loadingCount > 0,
		Error:             s.errMsg,
		IsInitialized:     s.isInitialized,
		DatabaseReady:     s.databaseReady,
		Subscribed:        subscribed,
		Page:              s.page,
		AllInvoicesLoaded: s.allInvoicesLoaded,
		IsLoadingMore:     s.isLoadingMore,
		ClientCount:       len(s.clients),
		InvoiceCount:      len(s.invoices),
	}
}

// Clients returns a copy of the loaded clients.
func (s *storeService) Clients() []domain.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Client, len(s.clients))
	copy(out, s.clients)
	return out
}

// Invoices returns a copy of the paged-in invoices.
func (s *storeService) Invoices() []domain.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Invoice, len(s.invoices))
	copy(out, s.invoices)
	return out
}

// ClearError resets the error string.
func (s *storeService) ClearError() {
	s.mu.Lock()
	s.errMsg = ""
	s.mu.Unlock()
}

// Reset drops the subscription and every cached row.
func (s *storeService) Reset() {
	s.UnsubscribeFromRealTimeUpdates()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = nil
	s.invoices = nil
	s.errMsg = ""
	s.isInitialized = false
	s.databaseReady = false
	s.page = 0
	s.allInvoicesLoaded = false
	s.isLoadingMore = false
	s.generation++
}

// begin marks an operation in flight and clears the previous error. The
// returned func ends it.
func (s *storeService) begin() func() {
	s.mu.Lock()
	s.loadingCount++
	s.errMsg = ""
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.loadingCount--
		s.mu.Unlock()
	}
}

// fail records err as the store error, raises an error notification titled
// title and returns err unchanged. A failure caused by ctx being cancelled,
// such as a sibling load in LoadData failing first, is only logged so the
// original cause stays in the store error.
func (s *storeService) fail(ctx context.Context, op, title string, err error) error {
	if ctx.Err() != nil && errors.Is(err, context.Canceled) {
		storeOperations.WithLabelValues(op, "cancelled").Inc()
		s.LogDebug(ctx, "Store operation cancelled", slog.String("operation", op), slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	s.errMsg = err.Error()
	s.mu.Unlock()

	storeOperations.WithLabelValues(op, "error").Inc()
	s.LogError(ctx, err, "Store operation failed", slog.String("operation", op))
	s.notify(domain.LevelError, title, err.Error())
	return err
}

// succeed counts op and raises a success notification when title is set.
func (s *storeService) succeed(op, title, message string) {
	storeOperations.WithLabelValues(op, "ok").Inc()
	if title != "" {
		s.notify(domain.LevelSuccess, title, message)
	}
}

func (s *storeService) notify(level domain.NotificationLevel, title, message string) {
	s.publisher.Publish(domain.StoreEvent{
		Type:         domain.EventNotification,
		Notification: &domain.Notification{Level: level, Title: title, Message: message},
	})
}

// submitAudit hands an entry to the audit queue attributed to the ctx actor.
func (s *storeService) submitAudit(ctx context.Context, action domain.AuditAction, entity domain.EntityType, id string, changes map[string]any) {
	if s.audit == nil {
		return
	}
	entry := domain.NewAuditLogEntry(action, entity, id, s.Actor(ctx), changes)
	entry.CreatedAt = s.now()
	s.audit.Submit(entry)
}

// background returns a context for work that outlives the request, carrying
// the store logger.
func (s *storeService) background() context.Context {
	return middleware.WithLogger(context.Background(), s.logger)
}
