package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/apperrors"
	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	portsrepo "github.com/SscSPs/drycleaner_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/drycleaner_app/internal/core/ports/services"
)

const (
	DefaultAuditQueueSize  = 256
	DefaultAuditMaxRetries = 3
	defaultAuditBackoff    = 200 * time.Millisecond
	defaultAuditTimeout    = 5 * time.Second
)

// auditQueue persists audit entries on a single background worker. Entries
// are dropped when the buffer is full or after maxRetries failed attempts.
type auditQueue struct {
	repo       portsrepo.AuditLogWriter
	logger     *slog.Logger
	maxRetries int
	backoff    time.Duration
	timeout    time.Duration

	mu      sync.RWMutex
	closed  bool
	entries chan domain.AuditLogEntry

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// AuditQueueOption configures the audit queue
type AuditQueueOption func(*auditQueue)

// WithAuditMaxRetries sets how many times a failed write is retried.
func WithAuditMaxRetries(n int) AuditQueueOption {
	return func(q *auditQueue) {
		if n >= 0 {
			q.maxRetries = n
		}
	}
}

// WithAuditBackoff sets the delay before the first retry. It doubles per attempt.
func WithAuditBackoff(d time.Duration) AuditQueueOption {
	return func(q *auditQueue) {
		q.backoff = d
	}
}

// WithAuditLogger sets the logger used by the worker.
func WithAuditLogger(logger *slog.Logger) AuditQueueOption {
	return func(q *auditQueue) {
		q.logger = logger
	}
}

// NewAuditQueue starts the worker. Call Close to drain it.
func NewAuditQueue(repo portsrepo.AuditLogWriter, size int, options ...AuditQueueOption) portssvc.AuditSvc {
	if size <= 0 {
		size = DefaultAuditQueueSize
	}
	q := &auditQueue{
		repo:       repo,
		logger:     slog.Default(),
		maxRetries: DefaultAuditMaxRetries,
		backoff:    defaultAuditBackoff,
		timeout:    defaultAuditTimeout,
		entries:    make(chan domain.AuditLogEntry, size),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	for _, option := range options {
		option(q)
	}

	go q.run()
	return q
}

var _ portssvc.AuditSvc = (*auditQueue)(nil)

// Submit enqueues entry without blocking.
func (q *auditQueue) Submit(entry domain.AuditLogEntry) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		q.drop(entry, "queue closed")
		return
	}
	select {
	case q.entries <- entry:
		auditQueueDepth.Inc()
	default:
		q.drop(entry, "queue full")
	}
}

// Close stops intake and waits for the worker to drain. When ctx ends first
// the worker abandons pending retries.
func (q *auditQueue) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.entries)
	}
	q.mu.Unlock()

	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		q.stopOnce.Do(func() { close(q.stop) })
		<-q.done
		return ctx.Err()
	}
}

func (q *auditQueue) run() {
	defer close(q.done)
	for entry := range q.entries {
		auditQueueDepth.Dec()
		q.write(entry)
	}
}

func (q *auditQueue) write(entry domain.AuditLogEntry) {
	delay := q.backoff
	for attempt := 0; ; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		err := q.repo.SaveAuditLog(ctx, entry)
		cancel()
		if err == nil {
			auditEntries.WithLabelValues("written").Inc()
			return
		}

		if errors.Is(err, apperrors.ErrValidation) || attempt >= q.maxRetries {
			q.logger.Error("Dropping audit entry after failed write",
				slog.String("error", err.Error()),
				slog.Int("attempts", attempt+1),
				slog.String("action", string(entry.Action)),
				slog.String("entity_type", string(entry.EntityType)),
				slog.String("entity_id", entry.EntityID))
			auditEntries.WithLabelValues("dropped").Inc()
			return
		}

		auditEntries.WithLabelValues("retried").Inc()
		select {
		case <-time.After(delay):
			delay *= 2
		case <-q.stop:
			q.drop(entry, "shutdown")
			return
		}
	}
}

func (q *auditQueue) drop(entry domain.AuditLogEntry, reason string) {
	auditEntries.WithLabelValues("dropped").Inc()
	q.logger.Warn("Audit entry dropped",
		slog.String("reason", reason),
		slog.String("action", string(entry.Action)),
		slog.String("entity_type", string(entry.EntityType)),
		slog.String("entity_id", entry.EntityID))
}
