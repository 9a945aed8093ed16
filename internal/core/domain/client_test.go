package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/apperrors"
	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewClient_Validate(t *testing.T) {
	tests := []struct {
		name    string
		client  domain.NewClient
		wantErr bool
	}{
		{name: "valid", client: domain.NewClient{Name: "Alice", Phone: "0788000000"}},
		{name: "missing name", client: domain.NewClient{Phone: "0788000000"}, wantErr: true},
		{name: "blank phone", client: domain.NewClient{Name: "Alice", Phone: "   "}, wantErr: true},
		{name: "negative visits", client: domain.NewClient{Name: "Alice", Phone: "1", VisitCount: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.client.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClientUpdate_ApplyAndChanges(t *testing.T) {
	name := "Bob"
	phone := " 0722 "
	claimed := true
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c := domain.Client{ID: "c1", Name: "Robert", Phone: "0700"}

	update := domain.ClientUpdate{Name: &name, Phone: &phone, RewardClaimed: &claimed}
	assert.NoError(t, update.Validate())
	update.Apply(&c, now)

	assert.Equal(t, "Bob", c.Name)
	assert.Equal(t, "0722", c.Phone)
	assert.True(t, c.RewardClaimed)
	assert.Equal(t, now, c.UpdatedAt)
	assert.Equal(t, map[string]any{"name": "Bob", "phone": " 0722 ", "rewardClaimed": true}, update.Changes())
}

func TestClientUpdate_ValidateRejectsEmpty(t *testing.T) {
	assert.ErrorIs(t, domain.ClientUpdate{}.Validate(), apperrors.ErrValidation)
	blank := ""
	assert.ErrorIs(t, domain.ClientUpdate{Name: &blank}.Validate(), apperrors.ErrValidation)
}
