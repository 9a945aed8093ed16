package services

import (
	"context"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	"github.com/SscSPs/drycleaner_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByPhone retrieves a user by phone number.
	GetUserByPhone(ctx context.Context, phone string) (*domain.UserAccount, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.UserAccount, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser creates a new user with the user role.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.UserAccount, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}

// ActivitySvc lists the audit trail.
type ActivitySvc interface {
	// ListActivity returns a page of audit entries, newest first, and the
	// token for the next page (empty when exhausted).
	ListActivity(ctx context.Context, limit int, nextToken string) ([]domain.AuditLogEntry, string, error)
}
