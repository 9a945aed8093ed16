package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice mirrors a row of the invoices table.
type Invoice struct {
	InvoiceID      string          `db:"id"`
	ClientID       string          `db:"client_id"`
	Total          decimal.Decimal `db:"total"`
	PaymentMethod  string          `db:"payment_method"`
	Paid           bool            `db:"paid"`
	Status         string          `db:"status"`
	PickupDate     *string         `db:"pickup_date"` // Selected as text
	PickupTime     *string         `db:"pickup_time"` // Selected as text
	Notes          *string         `db:"notes"`
	CreatedByName  *string         `db:"created_by_name"`
	CreatedByPhone *string         `db:"created_by_phone"`
	Timestamps
}

// InvoiceItem mirrors a row of the invoice_items table.
type InvoiceItem struct {
	ItemID      string          `db:"id"`
	InvoiceID   string          `db:"invoice_id"`
	Description string          `db:"description"`
	Quantity    int             `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	TotalPrice  decimal.Decimal `db:"total_price"`
	CreatedAt   time.Time       `db:"created_at"`
}
