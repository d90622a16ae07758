package repository

import (
	"context"

	"hospital-management-backend/internal/models"

	"gorm.io/gorm"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepo(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// ListPatients retrieves all patients ordered by name
func (r *PatientRepository) ListPatients(ctx context.Context) ([]models.Patient, error) {
	var patients []models.Patient
	err := r.db.WithContext(ctx).Order("name ASC").Find(&patients).Error
	return patients, err
}

// FindPatientByID retrieves a patient by ID
func (r *PatientRepository) FindPatientByID(ctx context.Context, id uint) (*models.Patient, error) {
	var patient models.Patient
	if err := r.db.WithContext(ctx).First(&patient, id).Error; err != nil {
		return nil, translate(err)
	}
	return &patient, nil
}

// PatientExists reports whether the id resolves to a patient
func (r *PatientRepository) PatientExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Patient{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// DocumentTaken reports whether another patient (not excludeID) holds the document
func (r *PatientRepository) DocumentTaken(ctx context.Context, document string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Patient{}).Where("document = ?", document)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// CreatePatient creates a new patient
func (r *PatientRepository) CreatePatient(ctx context.Context, patient *models.Patient) error {
	return translate(r.db.WithContext(ctx).Create(patient).Error)
}

// UpdatePatient saves all patient fields
func (r *PatientRepository) UpdatePatient(ctx context.Context, patient *models.Patient) error {
	return translate(r.db.WithContext(ctx).Save(patient).Error)
}

// DeletePatient removes a patient row
func (r *PatientRepository) DeletePatient(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Patient{}, id).Error
}

// PatientLinks counts the records that reference the patient
func (r *PatientRepository) PatientLinks(ctx context.Context, id uint) (models.PatientLinks, error) {
	var links models.PatientLinks
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Appointment{}).Where("patient_id = ?", id).Count(&links.Appointments).Error; err != nil {
		return links, err
	}
	if err := db.Model(&models.Exam{}).Where("patient_id = ?", id).Count(&links.Exams).Error; err != nil {
		return links, err
	}
	if err := db.Model(&models.OnlineConsultation{}).Where("patient_id = ?", id).Count(&links.OnlineConsultations).Error; err != nil {
		return links, err
	}
	if err := db.Model(&models.Prescription{}).Where("patient_id = ? AND active = ?", id, true).Count(&links.ActivePrescriptions).Error; err != nil {
		return links, err
	}

	var occupied int64
	if err := db.Model(&models.Bed{}).Where("patient_id = ? AND occupied = ?", id, true).Count(&occupied).Error; err != nil {
		return links, err
	}
	links.OccupiedBed = occupied > 0

	return links, nil
}
