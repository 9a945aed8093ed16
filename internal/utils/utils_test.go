package utils_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInvoiceID(t *testing.T) {
	now := time.Date(2024, time.March, 7, 10, 0, 0, 0, time.UTC)

	id, err := utils.GenerateInvoiceID(now)

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^INV240307\d{3}$`), id)
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount decimal.Decimal
		want   string
	}{
		{decimal.NewFromInt(0), "RWF 0"},
		{decimal.NewFromInt(950), "RWF 950"},
		{decimal.NewFromInt(12500), "RWF 12,500"},
		{decimal.NewFromFloat(1234567.6), "RWF 1,234,568"},
		{decimal.NewFromInt(-4000), "RWF -4,000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.FormatAmount(tt.amount))
		})
	}
}

func TestPasscodeHash(t *testing.T) {
	hash, err := utils.HashPasscode("2468")
	require.NoError(t, err)

	assert.True(t, utils.CheckPasscodeHash("2468", hash))
	assert.False(t, utils.CheckPasscodeHash("1357", hash))

	_, err = utils.HashPasscode("12")
	assert.Error(t, err)
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := utils.GenerateJWT("u1", "Alice", "0788", "admin", "secret", time.Minute, "test")
	require.NoError(t, err)

	claims, err := utils.ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "0788", claims.Phone)

	_, err = utils.ParseAndValidateJWT(token, "other-secret")
	assert.Error(t, err)
}
