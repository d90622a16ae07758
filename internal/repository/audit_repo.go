package repository

import (
	"context"

	"hospital-management-backend/internal/models"

	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateAuditLog stores one entry; unknown actions are rejected before the
// insert
func (r *AuditRepository) CreateAuditLog(ctx context.Context, userID *uint, action string, details string) error {
	entry, err := models.NewAuditLog(userID, action, details)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

// AuditFilter narrows an audit listing. A zero Limit means 100.
type AuditFilter struct {
	UserID uint
	Action string
	Limit  int
}

// ListAuditLogs returns the newest entries first
func (r *AuditRepository) ListAuditLogs(ctx context.Context, filter AuditFilter) ([]models.AuditLog, error) {
	query := r.db.WithContext(ctx).Model(&models.AuditLog{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	var entries []models.AuditLog
	err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
