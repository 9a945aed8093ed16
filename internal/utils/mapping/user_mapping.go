package mapping

import (
	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	"github.com/SscSPs/drycleaner_app/internal/models"
)

// ToModelUser converts a domain UserAccount to a model User
func ToModelUser(d domain.UserAccount) models.User {
	return models.User{
		UserID:     d.ID,
		Name:       d.Name,
		Phone:      d.Phone,
		Role:       string(d.Role),
		Timestamps: models.Timestamps{CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
	}
}

// ToDomainUser converts a model User to a domain UserAccount
func ToDomainUser(m models.User) domain.UserAccount {
	return domain.UserAccount{
		ID:         m.UserID,
		Name:       m.Name,
		Phone:      m.Phone,
		Role:       domain.UserRole(m.Role),
		Timestamps: domain.Timestamps{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain UserAccounts
func ToDomainUserSlice(ms []models.User) []domain.UserAccount {
	ds := make([]domain.UserAccount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
