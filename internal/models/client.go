package models

import "time"

// Client mirrors a row of the clients table.
type Client struct {
	ClientID      string    `db:"id"`
	Name          string    `db:"name"`
	Phone         string    `db:"phone"`
	Address       *string   `db:"address"`
	VisitCount    int       `db:"visit_count"`
	RewardClaimed bool      `db:"reward_claimed"`
	LastVisit     time.Time `db:"last_visit"`
	Timestamps
}

// Timestamps are the created_at/updated_at columns shared by most tables.
type Timestamps struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
