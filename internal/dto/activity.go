package dto

import (
	"github.com/SscSPs/drycleaner_app/internal/core/domain"
)

// ListActivityParams defines query parameters for the activity log.
type ListActivityParams struct {
	Limit     int    `form:"limit,default=500" binding:"min=1,max=500"`
	NextToken string `form:"nextToken"`
}

// ListActivityResponse wraps a page of audit entries.
type ListActivityResponse struct {
	Entries   []domain.AuditLogEntry `json:"entries"`
	NextToken string                 `json:"nextToken,omitempty"`
}
