package domain

import "time"

// Timestamps holds the standard creation/modification times of a row.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Actor identifies who performed an action. It is attached to audit entries
// and to invoices as creation attribution.
type Actor struct {
	UserID string   `json:"userID"`
	Name   string   `json:"name"`
	Phone  string   `json:"phone"`
	Role   UserRole `json:"role"`
}

// IsAdmin reports whether the actor has the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
