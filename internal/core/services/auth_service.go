package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/apperrors"
	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	portsrepo "github.com/SscSPs/drycleaner_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/drycleaner_app/internal/core/ports/services"
	"github.com/SscSPs/drycleaner_app/internal/utils"
)

// AdminUserID is the subject of tokens issued to the admin passcode holder.
const AdminUserID = "admin"

// authService verifies phone logins against the users table and the admin
// passcode against its bcrypt hash.
type authService struct {
	BaseService
	users             portsrepo.UserReader
	adminPasscodeHash string
}

// NewAuthService creates the login service. An empty adminPasscodeHash
// disables admin login.
func NewAuthService(users portsrepo.UserReader, adminPasscodeHash string) portssvc.AuthSvc {
	return &authService{
		users:             users,
		adminPasscodeHash: adminPasscodeHash,
	}
}

var _ portssvc.AuthSvc = (*authService)(nil)

func (s *authService) LoginWithPhone(ctx context.Context, phone string) (*domain.Actor, error) {
	phone = domain.NormalizePhone(phone)
	if phone == "" {
		return nil, apperrors.Validation("phone is required")
	}

	user, err := s.users.FindUserByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, err, "Login attempt with unknown phone")
			return nil, fmt.Errorf("account not found, ask an admin to create your account: %w", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.ID))
	return &domain.Actor{
		UserID: user.ID,
		Name:   user.Name,
		Phone:  user.Phone,
		Role:   user.Role,
	}, nil
}

func (s *authService) AdminLogin(ctx context.Context, passcode string) (*domain.Actor, error) {
	if s.adminPasscodeHash == "" {
		return nil, fmt.Errorf("admin login is not configured: %w", apperrors.ErrForbidden)
	}
	if passcode == "" || !utils.CheckPasscodeHash(passcode, s.adminPasscodeHash) {
		s.GetLogger(ctx).Warn("Rejected admin passcode")
		return nil, fmt.Errorf("invalid passcode: %w", apperrors.ErrUnauthorized)
	}
	return &domain.Actor{
		UserID: AdminUserID,
		Name:   "Admin",
		Role:   domain.RoleAdmin,
	}, nil
}

// tokenService issues signed JWT access tokens.
type tokenService struct {
	secret string
	expiry time.Duration
	issuer string
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(secret string, expiry time.Duration, issuer string) portssvc.TokenSvc {
	return &tokenService{secret: secret, expiry: expiry, issuer: issuer}
}

var _ portssvc.TokenSvc = (*tokenService)(nil)

// GenerateAccessToken creates a new JWT access token for actor.
func (s *tokenService) GenerateAccessToken(ctx context.Context, actor domain.Actor) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.expiry)
	token, err := utils.GenerateJWT(actor.UserID, actor.Name, actor.Phone, string(actor.Role), s.secret, s.expiry, s.issuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, expiryTime, nil
}
