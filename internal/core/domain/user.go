package domain

import "strings"

// UserRole is the access level of a user account.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// UserAccount is a staff member allowed to log in with their phone number.
// Accounts are only created by admins.
type UserAccount struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Phone string   `json:"phone"` // Unique, doubles as the login token
	Role  UserRole `json:"role"`
	Timestamps
}

// NormalizePhone trims whitespace around a phone number. Phone numbers are
// compared verbatim after trimming.
func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}
