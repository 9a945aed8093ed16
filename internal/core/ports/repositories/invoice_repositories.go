package repositories

import (
	"context"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data. Returned invoices
// carry their client and items.
type InvoiceReader interface {
	// ListInvoices retrieves invoices matching filter ordered by created_at
	// descending, then id, so that offset pages never overlap.
	ListInvoices(ctx context.Context, filter domain.InvoiceFilter, limit int, offset int) ([]domain.Invoice, error)

	// FindInvoiceByID retrieves a specific invoice by its ID.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// CreateInvoice persists the invoice row without its items.
	CreateInvoice(ctx context.Context, invoice domain.Invoice) error

	// CreateInvoiceItems persists items for an existing invoice.
	CreateInvoiceItems(ctx context.Context, invoiceID string, items []domain.InvoiceItem) error

	// UpdateInvoice applies a partial update in one transaction. A non-nil
	// update.Items replaces every item of the invoice together with the
	// scalar fields, so the stored total always matches the stored items.
	UpdateInvoice(ctx context.Context, invoiceID string, update domain.InvoiceUpdate) error

	// DeleteInvoice hard deletes an invoice. Its items cascade.
	DeleteInvoice(ctx context.Context, invoiceID string) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
