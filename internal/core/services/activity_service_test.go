package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/apperrors"
	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	"github.com/SscSPs/drycleaner_app/internal/core/services"
	"github.com/SscSPs/drycleaner_app/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func auditPage(n int, newest time.Time) []domain.AuditLogEntry {
	out := make([]domain.AuditLogEntry, n)
	for i := range out {
		out[i] = domain.AuditLogEntry{
			ID:        string(rune('a' + i)),
			Action:    domain.AuditUpdate,
			CreatedAt: newest.Add(-time.Duration(i) * time.Minute),
		}
	}
	return out
}

func TestListActivity_IssuesTokenWhenMoreRemain(t *testing.T) {
	ctx := context.Background()
	newest := time.Date(2024, time.May, 20, 10, 0, 0, 0, time.UTC)
	repo := new(MockAuditLogRepository)
	repo.On("ListAuditLogs", ctx, 3, (*domain.AuditCursor)(nil)).Return(auditPage(3, newest), nil).Once()

	entries, token, err := services.NewActivityService(repo).ListActivity(ctx, 2, "")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	createdAt, id, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, "b", id)
	assert.True(t, createdAt.Equal(entries[1].CreatedAt))
	repo.AssertExpectations(t)
}

func TestListActivity_FollowsCursor(t *testing.T) {
	ctx := context.Background()
	cursorTime := time.Date(2024, time.May, 20, 9, 0, 0, 0, time.UTC)
	repo := new(MockAuditLogRepository)
	repo.On("ListAuditLogs", ctx, 3, mock.MatchedBy(func(c *domain.AuditCursor) bool {
		return c != nil && c.ID == "b" && c.CreatedAt.Equal(cursorTime)
	})).Return(auditPage(1, cursorTime.Add(-time.Hour)), nil).Once()

	entries, token, err := services.NewActivityService(repo).ListActivity(ctx, 2, pagination.EncodeToken(cursorTime, "b"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Empty(t, token, "last page has no token")
	repo.AssertExpectations(t)
}

func TestListActivity_ClampsLimitAndRejectsBadToken(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAuditLogRepository)
	repo.On("ListAuditLogs", ctx, services.MaxActivityPage+1, (*domain.AuditCursor)(nil)).Return(nil, nil).Once()

	svc := services.NewActivityService(repo)
	_, _, err := svc.ListActivity(ctx, 10000, "")
	require.NoError(t, err)

	_, _, err = svc.ListActivity(ctx, 10, "not base64!")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertExpectations(t)
}
