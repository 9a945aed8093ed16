package dto

import (
	"time"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
)

// CreateClientRequest defines the data needed to register a client.
type CreateClientRequest struct {
	Name          string     `json:"name" binding:"required"`
	Phone         string     `json:"phone" binding:"required"`
	Address       string     `json:"address"`
	VisitCount    int        `json:"visitCount" binding:"min=0"`
	RewardClaimed bool       `json:"rewardClaimed"`
	LastVisit     *time.Time `json:"lastVisit"`
}

// ToNewClient converts the request to its domain form.
func (r CreateClientRequest) ToNewClient() domain.NewClient {
	return domain.NewClient{
		Name:          r.Name,
		Phone:         r.Phone,
		Address:       r.Address,
		VisitCount:    r.VisitCount,
		RewardClaimed: r.RewardClaimed,
		LastVisit:     r.LastVisit,
	}
}

// UpdateClientRequest defines the fields allowed for updating a client.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateClientRequest struct {
	Name          *string    `json:"name"`
	Phone         *string    `json:"phone"`
	Address       *string    `json:"address"`
	VisitCount    *int       `json:"visitCount" binding:"omitempty,min=0"`
	RewardClaimed *bool      `json:"rewardClaimed"`
	LastVisit     *time.Time `json:"lastVisit"`
}

// ToClientUpdate converts the request to its domain form.
func (r UpdateClientRequest) ToClientUpdate() domain.ClientUpdate {
	return domain.ClientUpdate{
		Name:          r.Name,
		Phone:         r.Phone,
		Address:       r.Address,
		VisitCount:    r.VisitCount,
		RewardClaimed: r.RewardClaimed,
		LastVisit:     r.LastVisit,
	}
}

// ListClientsResponse wraps the list of clients.
type ListClientsResponse struct {
	Clients []domain.Client `json:"clients"`
}
