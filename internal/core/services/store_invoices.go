package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/drycleaner_app/internal/apperrors"
	"github.com/SscSPs/drycleaner_app/internal/core/domain"
)

// AddInvoice writes the invoice row then its items. When the items insert
// fails the invoice row is deleted again. The visit bump is best effort.
func (s *storeService) AddInvoice(ctx context.Context, invoice domain.Invoice) (*domain.Invoice, error) {
	const op, failTitle = "add_invoice", "Error adding invoice"

	if err := invoice.Validate(); err != nil {
		return nil, s.fail(ctx, op, failTitle, err)
	}
	invoice.Normalize()
	if actor := s.Actor(ctx); invoice.CreatedByName == "" && invoice.CreatedByPhone == "" {
		invoice.CreatedByName = actor.Name
		invoice.CreatedByPhone = actor.Phone
	}

	done := s.begin()
	defer done()

	if err := s.invoiceRepo.CreateInvoice(ctx, invoice); err != nil {
		return nil, s.fail(ctx, op, failTitle, fmt.Errorf("failed to create invoice: %w", err))
	}

	if err := s.invoiceRepo.CreateInvoiceItems(ctx, invoice.ID, invoice.Items); err != nil {
		// Compensate even if the request was cancelled mid-way.
		if delErr := s.invoiceRepo.DeleteInvoice(context.WithoutCancel(ctx), invoice.ID); delErr != nil {
			s.LogError(ctx, delErr, "Failed to remove invoice after items insert failed",
				slog.String("invoice_id", invoice.ID))
		}
		return nil, s.fail(ctx, op, failTitle, fmt.Errorf("failed to create invoice items: %w", err))
	}

	if err := s.clientRepo.IncrementVisit(ctx, invoice.Client.ID, s.now()); err != nil {
		s.LogWarn(ctx, err, "Failed to update client visit count", slog.String("client_id", invoice.Client.ID))
	}

	stored, err := s.invoiceRepo.FindInvoiceByID(ctx, invoice.ID)
	if err != nil {
		s.LogWarn(ctx, err, "Failed to re-read created invoice", slog.String("invoice_id", invoice.ID))
		stored = &invoice
	}
	s.upsertInvoiceLocal(*stored)
	s.refreshClient(ctx, invoice.Client.ID)

	s.submitAudit(ctx, domain.AuditCreate, domain.EntityInvoice, invoice.ID, map[string]any{
		"total":  invoice.Total.String(),
		"status": string(invoice.Status),
	})
	s.LogInfo(ctx, "Invoice created", slog.String("invoice_id", invoice.ID), slog.String("client_id", invoice.Client.ID))
	s.succeed(op, "Invoice created successfully!", fmt.Sprintf("Invoice %s has been created.", invoice.ID))
	s.publisher.Publish(domain.StoreEvent{Type: domain.EventInvoicesChanged, EntityID: invoice.ID, Op: domain.ChangeInsert})
	return stored, nil
}

// UpdateInvoice applies a partial update. A non-nil Items replaces every
// item of the invoice.
func (s *storeService) UpdateInvoice(ctx context.Context, invoiceID string, update domain.InvoiceUpdate) error {
	const op, failTitle = "update_invoice", "Error updating invoice"

	if err := update.Validate(); err != nil {
		return s.fail(ctx, op, failTitle, err)
	}
	update.Normalize()

	done := s.begin()
	defer done()

	if err := s.invoiceRepo.UpdateInvoice(ctx, invoiceID, update); err != nil {
		return s.fail(ctx, op, failTitle, fmt.Errorf("failed to update invoice: %w", err))
	}

	now := s.now()
	s.refreshInvoice(ctx, invoiceID, func(inv *domain.Invoice) { update.Apply(inv, now) })

	s.submitAudit(ctx, domain.AuditUpdate, domain.EntityInvoice, invoiceID, update.Changes())
	s.succeed(op, "Invoice updated successfully!", "")
	s.publisher.Publish(domain.StoreEvent{Type: domain.EventInvoicesChanged, EntityID: invoiceID, Op: domain.ChangeUpdate})
	return nil
}

// DeleteInvoice hard deletes an invoice; its items cascade.
func (s *storeService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	const op, failTitle = "delete_invoice", "Error deleting invoice"

	done := s.begin()
	defer done()

	if err := s.invoiceRepo.DeleteInvoice(ctx, invoiceID); err != nil {
		return s.fail(ctx, op, failTitle, fmt.Errorf("failed to delete invoice: %w", err))
	}
	s.removeInvoiceLocal(invoiceID)

	s.submitAudit(ctx, domain.AuditDelete, domain.EntityInvoice, invoiceID, nil)
	s.LogInfo(ctx, "Invoice deleted", slog.String("invoice_id", invoiceID))
	s.succeed(op, "Invoice deleted successfully!", "")
	s.publisher.Publish(domain.StoreEvent{Type: domain.EventInvoicesChanged, EntityID: invoiceID, Op: domain.ChangeDelete})
	return nil
}

// UpdateInvoiceStatus sets the status remotely and on the cached copy.
func (s *storeService) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus) error {
	if !status.IsValid() {
		return s.fail(ctx, "update_invoice_status", "Error updating status",
			apperrors.Validation(fmt.Sprintf("invalid status %q", status)))
	}
	return s.updateField(ctx, invoiceID, domain.InvoiceUpdate{Status: &status}, fieldUpdate{
		op:           "update_invoice_status",
		action:       domain.AuditStatusUpdate,
		failTitle:    "Error updating status",
		failPrefix:   "failed to update invoice status",
		successTitle: "Status updated successfully!",
		successMsg:   fmt.Sprintf("Invoice %s marked as %s", invoiceID, status),
	})
}

// UpdateInvoicePaid sets only the paid flag.
func (s *storeService) UpdateInvoicePaid(ctx context.Context, invoiceID string, paid bool) error {
	title := "Marked as UNPAID"
	if paid {
		title = "Marked as PAID"
	}
	return s.updateField(ctx, invoiceID, domain.InvoiceUpdate{Paid: &paid}, fieldUpdate{
		op:           "update_invoice_paid",
		action:       domain.AuditUpdate,
		failTitle:    "Error updating paid flag",
		failPrefix:   "failed to update invoice paid flag",
		successTitle: title,
	})
}

// UpdateInvoicePaymentMethod sets the method and the paid flag derived from it.
func (s *storeService) UpdateInvoicePaymentMethod(ctx context.Context, invoiceID string, method domain.PaymentMethod) error {
	if !method.IsValid() {
		return s.fail(ctx, "update_invoice_payment_method", "Error updating payment method",
			apperrors.Validation(fmt.Sprintf("invalid payment method %q", method)))
	}
	update := domain.InvoiceUpdate{PaymentMethod: &method}
	update.Normalize()
	return s.updateField(ctx, invoiceID, update, fieldUpdate{
		op:           "update_invoice_payment_method",
		action:       domain.AuditUpdate,
		failTitle:    "Error updating payment method",
		failPrefix:   "failed to update invoice payment method",
		successTitle: "Payment method updated",
	})
}

type fieldUpdate struct {
	op           string
	action       domain.AuditAction
	failTitle    string
	failPrefix   string
	successTitle string
	successMsg   string
}

// updateField writes a single-field update and applies it to the cached
// copy without re-reading the row.
func (s *storeService) updateField(ctx context.Context, invoiceID string, update domain.InvoiceUpdate, f fieldUpdate) error {
	done := s.begin()
	defer done()

	if err := s.invoiceRepo.UpdateInvoice(ctx, invoiceID, update); err != nil {
		return s.fail(ctx, f.op, f.failTitle, fmt.Errorf("%s: %w", f.failPrefix, err))
	}
	now := s.now()
	s.patchInvoiceLocal(invoiceID, func(inv *domain.Invoice) { update.Apply(inv, now) })

	s.submitAudit(ctx, f.action, domain.EntityInvoice, invoiceID, update.Changes())
	s.succeed(f.op, f.successTitle, f.successMsg)
	s.publisher.Publish(domain.StoreEvent{Type: domain.EventInvoicesChanged, EntityID: invoiceID, Op: domain.ChangeUpdate})
	return nil
}
