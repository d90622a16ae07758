package repository

import (
	"context"

	"hospital-management-backend/internal/models"

	"gorm.io/gorm"
)

type ProfessionalRepository struct {
	db *gorm.DB
}

func NewProfessionalRepo(db *gorm.DB) *ProfessionalRepository {
	return &ProfessionalRepository{db: db}
}

// ListActiveProfessionals retrieves all active professionals
func (r *ProfessionalRepository) ListActiveProfessionals(ctx context.Context) ([]models.Professional, error) {
	var professionals []models.Professional
	err := r.db.WithContext(ctx).Where("active = ?", true).Order("name ASC").Find(&professionals).Error
	return professionals, err
}

// ProfessionalExists reports whether the id resolves to an active professional
func (r *ProfessionalRepository) ProfessionalExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Professional{}).
		Where("id = ? AND active = ?", id, true).
		Count(&count).Error
	return count > 0, err
}

// LicenseExists reports whether a professional already holds the license number
func (r *ProfessionalRepository) LicenseExists(ctx context.Context, license string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Professional{}).Where("license_number = ?", license).Count(&count).Error
	return count > 0, err
}

// CreateProfessional creates a new professional
func (r *ProfessionalRepository) CreateProfessional(ctx context.Context, professional *models.Professional) error {
	return translate(r.db.WithContext(ctx).Create(professional).Error)
}
