package dto

import (
	"time"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
)

// LoginRequest logs a staff member in by phone number.
type LoginRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// AdminLoginRequest unlocks the admin area.
type AdminLoginRequest struct {
	Passcode string `json:"passcode" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      domain.Actor `json:"user"`
}
