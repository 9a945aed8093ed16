package services

import (
	"log/slog"
	"time"

	portsrepo "github.com/SscSPs/drycleaner_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/drycleaner_app/internal/core/ports/services"
	"github.com/SscSPs/drycleaner_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The caller owns the returned Audit queue and must Close it on shutdown.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher portssvc.EventPublisher, logger *slog.Logger) *portssvc.ServiceContainer {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	now := func() time.Time { return time.Now().In(loc) }

	container := &portssvc.ServiceContainer{}

	// The audit queue is shared by the store and user management
	container.Audit = NewAuditQueue(repos.AuditLogRepo, cfg.AuditQueueSize,
		WithAuditMaxRetries(cfg.AuditMaxRetries),
		WithAuditLogger(logger.With(slog.String("component", "audit"))),
	)

	container.Store = NewStoreService(repos,
		WithEventPublisher(publisher),
		WithAuditQueue(container.Audit),
		WithStoreLogger(logger.With(slog.String("component", "store"))),
		WithClock(now),
	)

	container.Reporting = NewReportingService(container.Store,
		WithReportingLocation(loc),
		WithReportingClock(now),
	)
	container.User = NewUserService(repos.UserRepo, WithUserAudit(container.Audit))
	container.Auth = NewAuthService(repos.UserRepo, cfg.AdminPasscodeHash)
	container.Token = NewTokenService(cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)
	container.Activity = NewActivityService(repos.AuditLogRepo)

	return container
}
