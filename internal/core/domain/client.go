package domain

import (
	"strings"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/apperrors"
)

// Client is a customer record with contact info and visit history.
type Client struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"` // Unique business key
	Address       string    `json:"address,omitempty"`
	VisitCount    int       `json:"visitCount"` // Incremented on each new invoice, never recomputed
	RewardClaimed bool      `json:"rewardClaimed"`
	LastVisit     time.Time `json:"lastVisit"`
	Timestamps
}

// NewClient holds the fields supplied when registering a client.
type NewClient struct {
	Name          string
	Phone         string
	Address       string
	VisitCount    int
	RewardClaimed bool
	LastVisit     *time.Time
}

// Validate checks the required fields of a new client.
func (n NewClient) Validate() error {
	if strings.TrimSpace(n.Name) == "" {
		return apperrors.Validation("client name is required")
	}
	if NormalizePhone(n.Phone) == "" {
		return apperrors.Validation("client phone is required")
	}
	if n.VisitCount < 0 {
		return apperrors.Validation("visit count cannot be negative")
	}
	return nil
}

// ClientUpdate is a partial update; nil fields are left untouched.
type ClientUpdate struct {
	Name          *string
	Phone         *string
	Address       *string
	VisitCount    *int
	RewardClaimed *bool
	LastVisit     *time.Time
}

// IsEmpty reports whether the update carries no fields.
func (u ClientUpdate) IsEmpty() bool {
	return u.Name == nil && u.Phone == nil && u.Address == nil &&
		u.VisitCount == nil && u.RewardClaimed == nil && u.LastVisit == nil
}

// Validate rejects updates that would blank out required fields.
func (u ClientUpdate) Validate() error {
	if u.IsEmpty() {
		return apperrors.Validation("no fields to update")
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return apperrors.Validation("client name cannot be empty")
	}
	if u.Phone != nil && NormalizePhone(*u.Phone) == "" {
		return apperrors.Validation("client phone cannot be empty")
	}
	if u.VisitCount != nil && *u.VisitCount < 0 {
		return apperrors.Validation("visit count cannot be negative")
	}
	return nil
}

// Apply patches c in place.
func (u ClientUpdate) Apply(c *Client, now time.Time) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Phone != nil {
		c.Phone = NormalizePhone(*u.Phone)
	}
	if u.Address != nil {
		c.Address = *u.Address
	}
	if u.VisitCount != nil {
		c.VisitCount = *u.VisitCount
	}
	if u.RewardClaimed != nil {
		c.RewardClaimed = *u.RewardClaimed
	}
	if u.LastVisit != nil {
		c.LastVisit = *u.LastVisit
	}
	c.UpdatedAt = now
}

// Changes renders the update as an audit snapshot.
func (u ClientUpdate) Changes() map[string]any {
	changes := map[string]any{}
	if u.Name != nil {
		changes["name"] = *u.Name
	}
	if u.Phone != nil {
		changes["phone"] = *u.Phone
	}
	if u.Address != nil {
		changes["address"] = *u.Address
	}
	if u.VisitCount != nil {
		changes["visitCount"] = *u.VisitCount
	}
	if u.RewardClaimed != nil {
		changes["rewardClaimed"] = *u.RewardClaimed
	}
	if u.LastVisit != nil {
		changes["lastVisit"] = u.LastVisit.Format(time.RFC3339)
	}
	return changes
}
