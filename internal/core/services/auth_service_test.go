package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/apperrors"
	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	"github.com/SscSPs/drycleaner_app/internal/core/services"
	"github.com/SscSPs/drycleaner_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginWithPhone(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("FindUserByPhone", ctx, "0788000111").
		Return(&domain.UserAccount{ID: "u1", Name: "Aline", Phone: "0788000111", Role: domain.RoleUser}, nil).Once()
	repo.On("FindUserByPhone", ctx, "0788999999").Return(nil, apperrors.ErrNotFound).Once()
	repo.On("FindUserByPhone", ctx, "0788555555").Return(nil, assert.AnError).Once()

	svc := services.NewAuthService(repo, "")

	actor, err := svc.LoginWithPhone(ctx, " 0788000111 ")
	require.NoError(t, err)
	assert.Equal(t, domain.Actor{UserID: "u1", Name: "Aline", Phone: "0788000111", Role: domain.RoleUser}, *actor)

	_, err = svc.LoginWithPhone(ctx, "0788999999")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Contains(t, err.Error(), "account not found")

	_, err = svc.LoginWithPhone(ctx, "0788555555")
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.LoginWithPhone(ctx, "  ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	repo.AssertExpectations(t)
}

func TestAdminLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := utils.HashPasscode("4321")
	require.NoError(t, err)

	svc := services.NewAuthService(new(MockUserRepository), hash)

	actor, err := svc.AdminLogin(ctx, "4321")
	require.NoError(t, err)
	assert.True(t, actor.IsAdmin())
	assert.Equal(t, services.AdminUserID, actor.UserID)

	_, err = svc.AdminLogin(ctx, "1234")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = services.NewAuthService(new(MockUserRepository), "").AdminLogin(ctx, "4321")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestGenerateAccessToken(t *testing.T) {
	svc := services.NewTokenService("secret", time.Hour, "drycleaner-test")
	actor := domain.Actor{UserID: "u1", Name: "Aline", Phone: "0788000111", Role: domain.RoleUser}

	token, expiresAt, err := svc.GenerateAccessToken(context.Background(), actor)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := utils.ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "Aline", claims.Name)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "drycleaner-test", claims.Issuer)

	_, err = utils.ParseAndValidateJWT(token, "other-secret")
	assert.Error(t, err)
}
