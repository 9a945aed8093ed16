package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinPasscodeLength is the shortest admin passcode accepted for hashing.
const MinPasscodeLength = 4

// HashPasscode returns the bcrypt hash stored in ADMIN_PASSCODE_HASH.
func HashPasscode(passcode string) (string, error) {
	if len(passcode) < MinPasscodeLength {
		return "", fmt.Errorf("passcode must be at least %d characters", MinPasscodeLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash passcode: %w", err)
	}
	return string(hash), nil
}

// CheckPasscodeHash reports whether passcode matches hash.
func CheckPasscodeHash(passcode, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)) == nil
}
