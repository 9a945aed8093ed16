package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/drycleaner_app/internal/apperrors"
	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	portsrepo "github.com/SscSPs/drycleaner_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/drycleaner_app/internal/core/ports/services"
	"github.com/SscSPs/drycleaner_app/internal/utils/pagination"
)

// MaxActivityPage caps a single audit trail page.
const MaxActivityPage = 500

type activityService struct {
	BaseService
	repo portsrepo.AuditLogReader
}

// NewActivityService creates the audit trail reader.
func NewActivityService(repo portsrepo.AuditLogReader) portssvc.ActivitySvc {
	return &activityService{repo: repo}
}

var _ portssvc.ActivitySvc = (*activityService)(nil)

func (s *activityService) ListActivity(ctx context.Context, limit int, nextToken string) ([]domain.AuditLogEntry, string, error) {
	if limit <= 0 || limit > MaxActivityPage {
		limit = MaxActivityPage
	}

	var cursor *domain.AuditCursor
	if nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(nextToken)
		if err != nil {
			return nil, "", apperrors.Validation(err.Error())
		}
		cursor = &domain.AuditCursor{CreatedAt: createdAt, ID: id}
	}

	// One extra row tells whether another page exists.
	entries, err := s.repo.ListAuditLogs(ctx, limit+1, cursor)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit logs")
		return nil, "", fmt.Errorf("failed to list audit logs: %w", err)
	}

	token := ""
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token = pagination.EncodeToken(last.CreatedAt, last.ID)
	}
	return entries, token, nil
}
