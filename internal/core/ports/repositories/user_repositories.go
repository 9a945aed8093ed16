package repositories

import (
	"context"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByPhone retrieves the user registered with phone.
	FindUserByPhone(ctx context.Context, phone string) (*domain.UserAccount, error)

	// FindUsers retrieves a paginated list of users.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.UserAccount, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user and returns the stored row.
	SaveUser(ctx context.Context, user domain.UserAccount) (*domain.UserAccount, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
