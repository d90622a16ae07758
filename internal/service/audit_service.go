package service

import (
	"context"

	"hospital-management-backend/internal/apperror"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"
)

// MaxAuditPage caps one audit listing
const MaxAuditPage = 500

// AuditReader lists recorded audit entries
type AuditReader interface {
	ListAuditLogs(ctx context.Context, filter repository.AuditFilter) ([]models.AuditLog, error)
}

type AuditService struct {
	logs AuditReader
}

func NewAuditService(logs AuditReader) *AuditService {
	return &AuditService{logs: logs}
}

// ListAuditLogs returns the newest entries matching filter
func (s *AuditService) ListAuditLogs(ctx context.Context, filter repository.AuditFilter) ([]models.AuditLog, error) {
	if filter.Limit < 0 || filter.Limit > MaxAuditPage {
		return nil, apperror.Validation("limit must be between 1 and 500")
	}
	entries, err := s.logs.ListAuditLogs(ctx, filter)
	if err != nil {
		return nil, apperror.Unexpected("failed to list audit logs", err)
	}
	return entries, nil
}
