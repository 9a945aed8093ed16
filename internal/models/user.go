package models

// User mirrors a row of the users table.
type User struct {
	UserID string `db:"id"`
	Name   string `db:"name"`
	Phone  string `db:"phone"`
	Role   string `db:"role"`
	Timestamps
}
