package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	StatusPending   InvoiceStatus = "pending"
	StatusCompleted InvoiceStatus = "completed"
	StatusCancelled InvoiceStatus = "cancelled"
)

// IsValid reports whether s is one of the known statuses.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// PaymentMethod is how an invoice was settled.
type PaymentMethod string

const (
	PaymentUnpaid PaymentMethod = "UNPAID"
	PaymentCash   PaymentMethod = "CASH"
	PaymentMomo   PaymentMethod = "MOMO"
	PaymentBank   PaymentMethod = "BANK"
	PaymentCard   PaymentMethod = "CARD"
)

// PaymentMethods lists every accepted payment method in display order.
var PaymentMethods = []PaymentMethod{PaymentUnpaid, PaymentCash, PaymentMomo, PaymentBank, PaymentCard}

// IsValid reports whether m is a known payment method.
func (m PaymentMethod) IsValid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

// DerivePaid is the single source of the paid flag: an invoice is paid
// unless its payment method is UNPAID.
func DerivePaid(m PaymentMethod) bool {
	return m != PaymentUnpaid
}

// InvoiceItem is a line on an invoice. Items are owned by exactly one invoice.
type InvoiceItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// MoneyScale is the number of fractional digits stored for amounts.
const MoneyScale = 2

// LineTotal returns quantity × unit price.
func (it InvoiceItem) LineTotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Invoice is a billable order for a client.
type Invoice struct {
	ID             string          `json:"id"`
	Client         Client          `json:"client"`
	Items          []InvoiceItem   `json:"items"`
	Total          decimal.Decimal `json:"total"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod"`
	Paid           bool            `json:"paid"`
	Status         InvoiceStatus   `json:"status"`
	PickupDate     string          `json:"pickupDate,omitempty"` // YYYY-MM-DD
	PickupTime     string          `json:"pickupTime,omitempty"` // HH:MM or HH:MM:SS
	Notes          string          `json:"notes,omitempty"`
	CreatedByName  string          `json:"createdByName,omitempty"`
	CreatedByPhone string          `json:"createdByPhone,omitempty"`
	Timestamps
}

// normalizeItems rounds unit prices to MoneyScale, recomputes each line total
// and returns their sum. Rounding first keeps stored lines equal to
// quantity × unit price.
func normalizeItems(items []InvoiceItem) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		items[i].UnitPrice = items[i].UnitPrice.Round(MoneyScale)
		items[i].TotalPrice = items[i].LineTotal()
		total = total.Add(items[i].TotalPrice)
	}
	return total
}

// Normalize recomputes every line total and the invoice total, defaults the
// status and payment method, and derives the paid flag.
func (inv *Invoice) Normalize() {
	inv.Total = normalizeItems(inv.Items)
	if inv.Status == "" {
		inv.Status = StatusPending
	}
	if inv.PaymentMethod == "" {
		inv.PaymentMethod = PaymentUnpaid
	}
	inv.Paid = DerivePaid(inv.PaymentMethod)
}

// Validate checks a new invoice before any write.
func (inv Invoice) Validate() error {
	if strings.TrimSpace(inv.ID) == "" {
		return apperrors.Validation("Invoice ID is required")
	}
	if strings.TrimSpace(inv.Client.ID) == "" {
		return apperrors.Validation("Client ID is required")
	}
	if len(inv.Items) == 0 {
		return apperrors.Validation("Invoice items are required")
	}
	if err := ValidateItems(inv.Items); err != nil {
		return err
	}
	if inv.Status != "" && !inv.Status.IsValid() {
		return apperrors.Validation(fmt.Sprintf("invalid status %q", inv.Status))
	}
	if inv.PaymentMethod != "" && !inv.PaymentMethod.IsValid() {
		return apperrors.Validation(fmt.Sprintf("invalid payment method %q", inv.PaymentMethod))
	}
	return validatePickup(inv.PickupDate, inv.PickupTime)
}

// ValidateItems checks quantity and price constraints of a set of items.
func ValidateItems(items []InvoiceItem) error {
	for i, it := range items {
		if strings.TrimSpace(it.Description) == "" {
			return apperrors.Validation(fmt.Sprintf("item %d: description is required", i+1))
		}
		if it.Quantity < 1 {
			return apperrors.Validation(fmt.Sprintf("item %d: quantity must be at least 1", i+1))
		}
		if it.UnitPrice.IsNegative() {
			return apperrors.Validation(fmt.Sprintf("item %d: unit price cannot be negative", i+1))
		}
	}
	return nil
}

func validatePickup(date, clock string) error {
	if date != "" {
		if _, err := time.Parse(time.DateOnly, date); err != nil {
			return apperrors.Validation(fmt.Sprintf("invalid pickup date %q", date))
		}
	}
	if clock != "" {
		if _, ok := PickupMinute(clock); !ok {
			return apperrors.Validation(fmt.Sprintf("invalid pickup time %q", clock))
		}
	}
	return nil
}

// PickupMinute truncates a pickup time to HH:MM.
func PickupMinute(clock string) (string, bool) {
	if len(clock) < 5 {
		return "", false
	}
	minute := clock[:5]
	if _, err := time.Parse("15:04", minute); err != nil {
		return "", false
	}
	return minute, true
}

// InvoiceUpdate is a partial update. Nil fields are left untouched; a non-nil
// Items replaces the whole item set. Total and Paid are derived from Items and
// PaymentMethod when those are set.
type InvoiceUpdate struct {
	ClientID      *string
	PaymentMethod *PaymentMethod
	Status        *InvoiceStatus
	PickupDate    *string
	PickupTime    *string
	Notes         *string
	CreatedAt     *time.Time
	Items         []InvoiceItem

	Total *decimal.Decimal
	Paid  *bool
}

// IsEmpty reports whether the update carries no fields.
func (u InvoiceUpdate) IsEmpty() bool {
	return u.ClientID == nil && u.PaymentMethod == nil && u.Status == nil &&
		u.PickupDate == nil && u.PickupTime == nil && u.Notes == nil &&
		u.CreatedAt == nil && u.Items == nil && u.Paid == nil
}

// Validate rejects malformed fields.
func (u InvoiceUpdate) Validate() error {
	if u.IsEmpty() {
		return apperrors.Validation("no fields to update")
	}
	if u.ClientID != nil && strings.TrimSpace(*u.ClientID) == "" {
		return apperrors.Validation("Client ID is required")
	}
	if u.Status != nil && !u.Status.IsValid() {
		return apperrors.Validation(fmt.Sprintf("invalid status %q", *u.Status))
	}
	if u.PaymentMethod != nil && !u.PaymentMethod.IsValid() {
		return apperrors.Validation(fmt.Sprintf("invalid payment method %q", *u.PaymentMethod))
	}
	if u.Items != nil {
		if len(u.Items) == 0 {
			return apperrors.Validation("Invoice items are required")
		}
		if err := ValidateItems(u.Items); err != nil {
			return err
		}
	}
	var date, clock string
	if u.PickupDate != nil {
		date = *u.PickupDate
	}
	if u.PickupTime != nil {
		clock = *u.PickupTime
	}
	return validatePickup(date, clock)
}

// Normalize fills the derived Total and Paid fields.
func (u *InvoiceUpdate) Normalize() {
	if u.Items != nil {
		total := normalizeItems(u.Items)
		u.Total = &total
	}
	if u.PaymentMethod != nil {
		paid := DerivePaid(*u.PaymentMethod)
		u.Paid = &paid
	}
}

// Changes renders the update as an audit snapshot.
func (u InvoiceUpdate) Changes() map[string]any {
	changes := map[string]any{}
	if u.ClientID != nil {
		changes["clientId"] = *u.ClientID
	}
	if u.PaymentMethod != nil {
		changes["paymentMethod"] = string(*u.PaymentMethod)
	}
	if u.Paid != nil {
		changes["paid"] = *u.Paid
	}
	if u.Status != nil {
		changes["status"] = string(*u.Status)
	}
	if u.PickupDate != nil {
		changes["pickupDate"] = *u.PickupDate
	}
	if u.PickupTime != nil {
		changes["pickupTime"] = *u.PickupTime
	}
	if u.Notes != nil {
		changes["notes"] = *u.Notes
	}
	if u.CreatedAt != nil {
		changes["createdAt"] = u.CreatedAt.Format(time.RFC3339)
	}
	if u.Total != nil {
		changes["total"] = u.Total.String()
	}
	if u.Items != nil {
		changes["items"] = len(u.Items)
	}
	return changes
}

// InvoiceFilter narrows an invoice listing. Zero values are ignored; the
// IDContains and ClientIDs predicates are combined with OR when both are set.
type InvoiceFilter struct {
	IDContains  string
	ClientIDs   []string
	ClientID    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// Apply patches inv in place. A changed ClientID only sets the client id;
// callers resolve the full client separately.
func (u InvoiceUpdate) Apply(inv *Invoice, now time.Time) {
	if u.ClientID != nil && *u.ClientID != inv.Client.ID {
		inv.Client = Client{ID: *u.ClientID}
	}
	if u.PaymentMethod != nil {
		inv.PaymentMethod = *u.PaymentMethod
		inv.Paid = DerivePaid(*u.PaymentMethod)
	} else if u.Paid != nil {
		inv.Paid = *u.Paid
	}
	if u.Status != nil {
		inv.Status = *u.Status
	}
	if u.PickupDate != nil {
		inv.PickupDate = *u.PickupDate
	}
	if u.PickupTime != nil {
		inv.PickupTime = *u.PickupTime
	}
	if u.Notes != nil {
		inv.Notes = *u.Notes
	}
	if u.CreatedAt != nil {
		inv.CreatedAt = *u.CreatedAt
	}
	if u.Items != nil {
		inv.Items = append([]InvoiceItem(nil), u.Items...)
	}
	if u.Total != nil {
		inv.Total = *u.Total
	}
	inv.UpdatedAt = now
}
