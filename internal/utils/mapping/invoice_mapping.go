package mapping

import (
	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	"github.com/SscSPs/drycleaner_app/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice. Items are
// mapped separately with ToModelInvoiceItems.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:      d.ID,
		ClientID:       d.Client.ID,
		Total:          d.Total,
		PaymentMethod:  string(d.PaymentMethod),
		Paid:           d.Paid,
		Status:         string(d.Status),
		PickupDate:     stringPtr(d.PickupDate),
		PickupTime:     stringPtr(d.PickupTime),
		Notes:          stringPtr(d.Notes),
		CreatedByName:  stringPtr(d.CreatedByName),
		CreatedByPhone: stringPtr(d.CreatedByPhone),
		Timestamps:     models.Timestamps{CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
	}
}

// ToDomainInvoice assembles a domain Invoice from its row, owning client and items.
func ToDomainInvoice(m models.Invoice, client models.Client, items []models.InvoiceItem) domain.Invoice {
	return domain.Invoice{
		ID:             m.InvoiceID,
		Client:         ToDomainClient(client),
		Items:          ToDomainInvoiceItems(items),
		Total:          m.Total,
		PaymentMethod:  domain.PaymentMethod(m.PaymentMethod),
		Paid:           m.Paid,
		Status:         domain.InvoiceStatus(m.Status),
		PickupDate:     derefString(m.PickupDate),
		PickupTime:     derefString(m.PickupTime),
		Notes:          derefString(m.Notes),
		CreatedByName:  derefString(m.CreatedByName),
		CreatedByPhone: derefString(m.CreatedByPhone),
		Timestamps:     domain.Timestamps{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
	}
}

// ToModelInvoiceItems converts domain items of invoiceID to model rows.
func ToModelInvoiceItems(invoiceID string, ds []domain.InvoiceItem) []models.InvoiceItem {
	ms := make([]models.InvoiceItem, len(ds))
	for i, d := range ds {
		ms[i] = models.InvoiceItem{
			ItemID:      d.ID,
			InvoiceID:   invoiceID,
			Description: d.Description,
			Quantity:    d.Quantity,
			UnitPrice:   d.UnitPrice,
			TotalPrice:  d.TotalPrice,
		}
	}
	return ms
}

// ToDomainInvoiceItems converts model rows to domain items.
func ToDomainInvoiceItems(ms []models.InvoiceItem) []domain.InvoiceItem {
	ds := make([]domain.InvoiceItem, len(ms))
	for i, m := range ms {
		ds[i] = domain.InvoiceItem{
			ID:          m.ItemID,
			Description: m.Description,
			Quantity:    m.Quantity,
			UnitPrice:   m.UnitPrice,
			TotalPrice:  m.TotalPrice,
		}
	}
	return ds
}
