package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateInvoiceID builds a human readable invoice id: "INV", the two-digit
// year, month and day of now, and three random digits.
func GenerateInvoiceID(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return fmt.Sprintf("INV%s%03d", now.Format("060102"), n.Int64()), nil
}
