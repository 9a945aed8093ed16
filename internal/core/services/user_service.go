package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/drycleaner_app/internal/apperrors"
	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	portsrepo "github.com/SscSPs/drycleaner_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/drycleaner_app/internal/core/ports/services"
	"github.com/SscSPs/drycleaner_app/internal/dto"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	audit    portssvc.AuditSvc
}

// UserServiceOption is a functional option for configuring the user service
type UserServiceOption func(*userService)

// WithUserAudit records user creation in the audit trail.
func WithUserAudit(audit portssvc.AuditSvc) UserServiceOption {
	return func(s *userService) {
		s.audit = audit
	}
}

// NewUserService creates a new user service
func NewUserService(userRepo portsrepo.UserRepositoryFacade, options ...UserServiceOption) portssvc.UserSvcFacade {
	svc := &userService{userRepo: userRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser registers a staff member. New accounts always get the user role.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.UserAccount, error) {
	name := strings.TrimSpace(req.Name)
	phone := domain.NormalizePhone(req.Phone)
	if name == "" || phone == "" {
		return nil, apperrors.Validation("name and phone are required")
	}

	user, err := s.userRepo.SaveUser(ctx, domain.UserAccount{
		Name:  name,
		Phone: phone,
		Role:  domain.RoleUser,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create user", slog.String("phone", phone))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.audit != nil {
		s.audit.Submit(domain.NewAuditLogEntry(domain.AuditCreate, domain.EntityUser, user.ID, s.Actor(ctx),
			map[string]any{"name": user.Name, "phone": user.Phone}))
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", user.ID))
	return user, nil
}

func (s *userService) GetUserByPhone(ctx context.Context, phone string) (*domain.UserAccount, error) {
	phone = domain.NormalizePhone(phone)
	if phone == "" {
		return nil, apperrors.Validation("phone is required")
	}
	user, err := s.userRepo.FindUserByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by phone: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.UserAccount, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
