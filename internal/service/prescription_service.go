package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hospital-management-backend/internal/apperror"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"

	"go.uber.org/zap"
)

// PrescriptionStore persists prescriptions
type PrescriptionStore interface {
	ListActivePrescriptions(ctx context.Context, patientID uint) ([]models.Prescription, error)
	CreatePrescription(ctx context.Context, prescription *models.Prescription) error
	DeactivatePrescription(ctx context.Context, id uint) (*models.Prescription, error)
}

type PrescriptionService struct {
	prescriptions PrescriptionStore
	patients      PatientChecker
	professionals ProfessionalChecker
	audit         AuditRecorder
	log           *zap.Logger
}

func NewPrescriptionService(prescriptions PrescriptionStore, patients PatientChecker, professionals ProfessionalChecker, audit AuditRecorder, log *zap.Logger) *PrescriptionService {
	return &PrescriptionService{
		prescriptions: prescriptions,
		patients:      patients,
		professionals: professionals,
		audit:         audit,
		log:           log,
	}
}

// PrescriptionInput carries a new prescription
type PrescriptionInput struct {
	PatientID            uint
	ProfessionalID       uint
	OnlineConsultationID *uint
	AppointmentID        *uint
	Medication           string
	Dosage               string
	Frequency            string
	Duration             string
	Instructions         string
}

// ListActive returns active prescriptions. A zero patientID lists all patients.
func (s *PrescriptionService) ListActive(ctx context.Context, patientID uint) ([]models.Prescription, error) {
	prescriptions, err := s.prescriptions.ListActivePrescriptions(ctx, patientID)
	if err != nil {
		return nil, apperror.Unexpected("failed to list prescriptions", err)
	}
	return prescriptions, nil
}

// CreatePrescription issues an active prescription
func (s *PrescriptionService) CreatePrescription(ctx context.Context, in PrescriptionInput) (*models.Prescription, error) {
	if in.PatientID == 0 || in.ProfessionalID == 0 {
		return nil, apperror.Validation("patient_id and professional_id are required")
	}
	medication := strings.TrimSpace(in.Medication)
	if medication == "" || in.Dosage == "" || in.Frequency == "" || in.Duration == "" {
		return nil, apperror.Validation("medication, dosage, frequency and duration are required")
	}

	if err := ensureParticipants(ctx, s.patients, s.professionals, in.PatientID, in.ProfessionalID); err != nil {
		return nil, err
	}

	prescription := &models.Prescription{
		PatientID:            in.PatientID,
		ProfessionalID:       in.ProfessionalID,
		OnlineConsultationID: in.OnlineConsultationID,
		AppointmentID:        in.AppointmentID,
		Medication:           medication,
		Dosage:               in.Dosage,
		Frequency:            in.Frequency,
		Duration:             in.Duration,
		Instructions:         in.Instructions,
		Active:               true,
	}
	if err := s.prescriptions.CreatePrescription(ctx, prescription); err != nil {
		return nil, apperror.Unexpected("failed to create prescription", err)
	}
	return prescription, nil
}

// Deactivate closes a prescription
func (s *PrescriptionService) Deactivate(ctx context.Context, actor *models.User, id uint) (*models.Prescription, error) {
	prescription, err := s.prescriptions.DeactivatePrescription(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound(apperror.CodeRecordNotFound, "prescription not found")
		}
		return nil, apperror.Unexpected("failed to deactivate prescription", err)
	}

	var userID *uint
	if actor != nil {
		userID = &actor.ID
	}
	details := fmt.Sprintf("Prescription %d for patient %d deactivated", prescription.ID, prescription.PatientID)
	if err := s.audit.CreateAuditLog(ctx, userID, models.AuditPrescriptionClose, details); err != nil {
		s.log.Warn("failed to write audit log", zap.String("action", models.AuditPrescriptionClose), zap.Error(err))
	}
	return prescription, nil
}
