package dto

import (
	"time"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceItemRequest is one line of an invoice request.
type InvoiceItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

func toItems(reqs []InvoiceItemRequest) []domain.InvoiceItem {
	if reqs == nil {
		return nil
	}
	items := make([]domain.InvoiceItem, len(reqs))
	for i, r := range reqs {
		items[i] = domain.InvoiceItem{
			Description: r.Description,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
		}
	}
	return items
}

// CreateInvoiceRequest defines the data needed to create an invoice. The id is
// generated when omitted; totals and the paid flag are always derived.
type CreateInvoiceRequest struct {
	ID            string               `json:"id"`
	ClientID      string               `json:"clientId" binding:"required"`
	Items         []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod string               `json:"paymentMethod" binding:"omitempty,paymentmethod"`
	Status        string               `json:"status" binding:"omitempty,invoicestatus"`
	PickupDate    string               `json:"pickupDate"`
	PickupTime    string               `json:"pickupTime"`
	Notes         string               `json:"notes"`
}

// ToInvoice converts the request to its domain form.
func (r CreateInvoiceRequest) ToInvoice() domain.Invoice {
	return domain.Invoice{
		ID:            r.ID,
		Client:        domain.Client{ID: r.ClientID},
		Items:         toItems(r.Items),
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
		Status:        domain.InvoiceStatus(r.Status),
		PickupDate:    r.PickupDate,
		PickupTime:    r.PickupTime,
		Notes:         r.Notes,
	}
}

// UpdateInvoiceRequest defines the fields allowed for updating an invoice.
// A present items array replaces every existing item.
type UpdateInvoiceRequest struct {
	ClientID      *string              `json:"clientId"`
	PaymentMethod *string              `json:"paymentMethod" binding:"omitempty,paymentmethod"`
	Status        *string              `json:"status" binding:"omitempty,invoicestatus"`
	PickupDate    *string              `json:"pickupDate"`
	PickupTime    *string              `json:"pickupTime"`
	Notes         *string              `json:"notes"`
	CreatedAt     *time.Time           `json:"createdAt"`
	Items         []InvoiceItemRequest `json:"items" binding:"omitempty,dive"`
}

// ToInvoiceUpdate converts the request to its domain form.
func (r UpdateInvoiceRequest) ToInvoiceUpdate() domain.InvoiceUpdate {
	update := domain.InvoiceUpdate{
		ClientID:   r.ClientID,
		PickupDate: r.PickupDate,
		PickupTime: r.PickupTime,
		Notes:      r.Notes,
		CreatedAt:  r.CreatedAt,
		Items:      toItems(r.Items),
	}
	if r.PaymentMethod != nil {
		m := domain.PaymentMethod(*r.PaymentMethod)
		update.PaymentMethod = &m
	}
	if r.Status != nil {
		s := domain.InvoiceStatus(*r.Status)
		update.Status = &s
	}
	return update
}

// UpdateInvoiceStatusRequest sets only the status.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required,invoicestatus"`
}

// UpdateInvoicePaidRequest sets only the paid flag.
type UpdateInvoicePaidRequest struct {
	Paid *bool `json:"paid" binding:"required"`
}

// UpdateInvoicePaymentMethodRequest sets the payment method; paid follows.
type UpdateInvoicePaymentMethodRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"required,paymentmethod"`
}

// ListInvoicesResponse wraps a page of invoices with the store's paging state.
type ListInvoicesResponse struct {
	Invoices          []domain.Invoice `json:"invoices"`
	Page              int              `json:"page"`
	AllInvoicesLoaded bool             `json:"allInvoicesLoaded"`
}

// SearchInvoicesResponse wraps search or range results.
type SearchInvoicesResponse struct {
	Invoices []domain.Invoice `json:"invoices"`
	Count    int              `json:"count"`
}

// NewSearchInvoicesResponse builds the response for a result list.
func NewSearchInvoicesResponse(invoices []domain.Invoice) SearchInvoicesResponse {
	if invoices == nil {
		invoices = []domain.Invoice{}
	}
	return SearchInvoicesResponse{Invoices: invoices, Count: len(invoices)}
}
