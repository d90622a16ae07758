package repository

import (
	"context"

	"hospital-management-backend/internal/models"

	"gorm.io/gorm"
)

type ConsultationRepository struct {
	db *gorm.DB
}

func NewConsultationRepo(db *gorm.DB) *ConsultationRepository {
	return &ConsultationRepository{db: db}
}

// ListConsultations retrieves online consultations in chronological order
func (r *ConsultationRepository) ListConsultations(ctx context.Context) ([]models.OnlineConsultation, error) {
	var consultations []models.OnlineConsultation
	err := r.db.WithContext(ctx).Order("starts_at ASC").Find(&consultations).Error
	return consultations, err
}

// CreateConsultation creates a new online consultation
func (r *ConsultationRepository) CreateConsultation(ctx context.Context, consultation *models.OnlineConsultation) error {
	return r.db.WithContext(ctx).Create(consultation).Error
}

// UpdateConsultationLocked applies transition to the consultation while holding its row lock
func (r *ConsultationRepository) UpdateConsultationLocked(ctx context.Context, id uint, transition func(c *models.OnlineConsultation) error) (*models.OnlineConsultation, error) {
	var consultation models.OnlineConsultation
	err := updateLocked(ctx, r.db, &consultation, id, func() error {
		return transition(&consultation)
	}, "status", "starts_at", "ends_at", "notes", "reported_symptoms", "diagnosis")
	if err != nil {
		return nil, err
	}
	return &consultation, nil
}
