package repositories

import (
	"context"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
)

// SchemaChecker verifies that the backing tables exist and are reachable.
type SchemaChecker interface {
	// CheckSchema returns apperrors.ErrSchemaMissing when a table is missing,
	// or the connection error when the database cannot be reached.
	CheckSchema(ctx context.Context) error
}

// ChangeFeed delivers row-level change notifications.
type ChangeFeed interface {
	// Listen blocks, invoking handler for every change, until ctx is
	// cancelled or the connection fails.
	Listen(ctx context.Context, handler func(domain.ChangeEvent)) error
}
