package mapping

import (
	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	"github.com/SscSPs/drycleaner_app/internal/models"
)

// ToModelClient converts a domain Client to a model Client
func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:      d.ID,
		Name:          d.Name,
		Phone:         d.Phone,
		Address:       stringPtr(d.Address),
		VisitCount:    d.VisitCount,
		RewardClaimed: d.RewardClaimed,
		LastVisit:     d.LastVisit,
		Timestamps:    models.Timestamps{CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
	}
}

// ToDomainClient converts a model Client to a domain Client
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ID:            m.ClientID,
		Name:          m.Name,
		Phone:         m.Phone,
		Address:       derefString(m.Address),
		VisitCount:    m.VisitCount,
		RewardClaimed: m.RewardClaimed,
		LastVisit:     m.LastVisit,
		Timestamps:    domain.Timestamps{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
	}
}

// ToDomainClientSlice converts a slice of model Clients to a slice of domain Clients
func ToDomainClientSlice(ms []models.Client) []domain.Client {
	ds := make([]domain.Client, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainClient(m)
	}
	return ds
}
