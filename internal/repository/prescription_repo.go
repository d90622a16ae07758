package repository

import (
	"context"

	"hospital-management-backend/internal/models"

	"gorm.io/gorm"
)

type PrescriptionRepository struct {
	db *gorm.DB
}

func NewPrescriptionRepo(db *gorm.DB) *PrescriptionRepository {
	return &PrescriptionRepository{db: db}
}

// ListActivePrescriptions retrieves active prescriptions, optionally for one patient
func (r *PrescriptionRepository) ListActivePrescriptions(ctx context.Context, patientID uint) ([]models.Prescription, error) {
	query := r.db.WithContext(ctx).Where("active = ?", true)
	if patientID != 0 {
		query = query.Where("patient_id = ?", patientID)
	}

	var prescriptions []models.Prescription
	err := query.Order("created_at DESC").Find(&prescriptions).Error
	return prescriptions, err
}

// CreatePrescription creates a new prescription
func (r *PrescriptionRepository) CreatePrescription(ctx context.Context, prescription *models.Prescription) error {
	return r.db.WithContext(ctx).Create(prescription).Error
}

// DeactivatePrescription marks a prescription inactive
func (r *PrescriptionRepository) DeactivatePrescription(ctx context.Context, id uint) (*models.Prescription, error) {
	var prescription models.Prescription
	err := updateLocked(ctx, r.db, &prescription, id, func() error {
		prescription.Active = false
		return nil
	}, "active")
	if err != nil {
		return nil, err
	}
	return &prescription, nil
}
