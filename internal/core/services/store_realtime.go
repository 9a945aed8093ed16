package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/apperrors"
	"github.com/SscSPs/drycleaner_app/internal/core/domain"
)

const resubscribeDelay = 5 * time.Second

// CheckDatabaseSetup probes the schema and records databaseReady. Failures
// leave a descriptive error for the dashboard to show with a retry action.
func (s *storeService) CheckDatabaseSetup(ctx context.Context) bool {
	return s.checkSetup(ctx) == nil
}

func (s *storeService) checkSetup(ctx context.Context) error {
	err := s.schema.CheckSchema(ctx)

	s.mu.Lock()
	s.databaseReady = err == nil
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrSchemaMissing):
		s.errMsg = "Database tables are missing. Run the migrations, then retry."
	default:
		s.errMsg = fmt.Sprintf("Unable to reach the database: %v", err)
	}
	s.mu.Unlock()

	if err != nil {
		s.LogError(ctx, err, "Database setup check failed")
		return fmt.Errorf("database is not ready: %w", err)
	}
	return nil
}

// InitializeDatabase checks setup, reloads everything and makes sure the
// change subscription is running.
func (s *storeService) InitializeDatabase(ctx context.Context) error {
	done := s.begin()
	defer done()

	if err := s.checkSetup(ctx); err != nil {
		return err
	}
	if err := s.LoadData(ctx); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	if err := s.SubscribeToRealTimeUpdates(ctx); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}

	s.mu.Lock()
	s.isInitialized = true
	s.mu.Unlock()
	return nil
}

// SubscribeToRealTimeUpdates starts the change listener. It is a no-op when
// already subscribed. The listener reconnects until unsubscribed.
func (s *storeService) SubscribeToRealTimeUpdates(ctx context.Context) error {
	if s.changes == nil {
		return errors.New("no change feed configured")
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()
	if s.cancelSub != nil {
		return nil
	}

	subCtx, cancel := context.WithCancel(s.background())
	done := make(chan struct{})
	s.cancelSub = cancel
	s.subDone = done

	go func() {
		defer close(done)
		for {
			err := s.changes.Listen(subCtx, func(ev domain.ChangeEvent) { s.handleChange(subCtx, ev) })
			if subCtx.Err() != nil {
				return
			}
			if err != nil {
				s.LogWarn(subCtx, err, "Change listener stopped, resubscribing", slog.Duration("delay", resubscribeDelay))
			}
			select {
			case <-time.After(resubscribeDelay):
			case <-subCtx.Done():
				return
			}
		}
	}()

	s.LogInfo(ctx, "Subscribed to realtime updates")
	return nil
}

// UnsubscribeFromRealTimeUpdates stops the listener and waits for it to exit.
func (s *storeService) UnsubscribeFromRealTimeUpdates() {
	s.subMu.Lock()
	cancel, done := s.cancelSub, s.subDone
	s.cancelSub, s.subDone = nil, nil
	s.subMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// handleChange reconciles the single row named by ev.
func (s *storeService) handleChange(ctx context.Context, ev domain.ChangeEvent) {
	storeChangeEvents.WithLabelValues(ev.Table, string(ev.Op)).Inc()
	s.LogDebug(ctx, "Change notification", slog.String("table", ev.Table), slog.String("op", string(ev.Op)), slog.String("id", ev.ID))

	switch ev.Table {
	case domain.TableClients:
		if ev.Op == domain.ChangeDelete {
			s.removeClientLocal(ev.ID)
		} else {
			s.refreshClient(ctx, ev.ID)
		}
		s.publisher.Publish(domain.StoreEvent{Type: domain.EventClientsChanged, EntityID: ev.ID, Op: ev.Op})
	case domain.TableInvoices:
		if ev.Op == domain.ChangeDelete {
			s.removeInvoiceLocal(ev.ID)
		} else {
			s.refreshInvoice(ctx, ev.ID, nil)
		}
		s.publisher.Publish(domain.StoreEvent{Type: domain.EventInvoicesChanged, EntityID: ev.ID, Op: ev.Op})
	default:
		s.LogDebug(ctx, "Ignoring change for unknown table", slog.String("table", ev.Table))
	}
}

// StartPeriodicRefresh re-runs InitializeDatabase every interval and checks
// pickups every minute, until ctx ends. It returns immediately.
func (s *storeService) StartPeriodicRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	go func() {
		refresh := time.NewTicker(interval)
		defer refresh.Stop()
		pickups := time.NewTicker(time.Minute)
		defer pickups.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-refresh.C:
				bg := s.background()
				if err := s.InitializeDatabase(bg); err != nil {
					s.LogWarn(bg, err, "Periodic refresh failed")
				}
			case <-pickups.C:
				s.publishPickups()
			}
		}
	}()
}
