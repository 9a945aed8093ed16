package services

import (
	"context"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
)

// AuthSvc verifies login credentials.
type AuthSvc interface {
	// LoginWithPhone resolves the user registered with phone.
	LoginWithPhone(ctx context.Context, phone string) (*domain.Actor, error)

	// AdminLogin checks the admin passcode.
	AdminLogin(ctx context.Context, passcode string) (*domain.Actor, error)
}

// TokenSvc issues access tokens.
type TokenSvc interface {
	GenerateAccessToken(ctx context.Context, actor domain.Actor) (string, time.Time, error)
}
