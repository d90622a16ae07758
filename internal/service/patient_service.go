package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hospital-management-backend/internal/apperror"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"

	"go.uber.org/zap"
)

// PatientStore persists patients
type PatientStore interface {
	PatientChecker
	ListPatients(ctx context.Context) ([]models.Patient, error)
	FindPatientByID(ctx context.Context, id uint) (*models.Patient, error)
	DocumentTaken(ctx context.Context, document string, excludeID uint) (bool, error)
	CreatePatient(ctx context.Context, patient *models.Patient) error
	UpdatePatient(ctx context.Context, patient *models.Patient) error
	DeletePatient(ctx context.Context, id uint) error
	PatientLinks(ctx context.Context, id uint) (models.PatientLinks, error)
}

type PatientService struct {
	patients PatientStore
	audit    AuditRecorder
	log      *zap.Logger
}

func NewPatientService(patients PatientStore, audit AuditRecorder, log *zap.Logger) *PatientService {
	return &PatientService{
		patients: patients,
		audit:    audit,
		log:      log,
	}
}

// PatientInput carries the writable patient fields
type PatientInput struct {
	Name      string
	Document  string
	Phone     string
	Email     string
	Address   string
	BirthDate string
}

func (in PatientInput) apply(patient *models.Patient) error {
	name := strings.TrimSpace(in.Name)
	document := strings.TrimSpace(in.Document)
	if name == "" || document == "" {
		return apperror.Validation("name and document are required")
	}

	patient.Name = name
	patient.Document = document
	patient.Phone = in.Phone
	patient.Email = in.Email
	patient.Address = in.Address
	patient.BirthDate = nil

	if in.BirthDate != "" {
		birthDate, err := time.Parse(dateLayout, in.BirthDate)
		if err != nil {
			return apperror.Validation("invalid birth_date format, use YYYY-MM-DD")
		}
		patient.BirthDate = &birthDate
	}
	return nil
}

// ListPatients returns every patient ordered by name
func (s *PatientService) ListPatients(ctx context.Context) ([]models.Patient, error) {
	patients, err := s.patients.ListPatients(ctx)
	if err != nil {
		return nil, apperror.Unexpected("failed to list patients", err)
	}
	return patients, nil
}

// GetPatient returns one patient
func (s *PatientService) GetPatient(ctx context.Context, id uint) (*models.Patient, error) {
	patient, err := s.patients.FindPatientByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.ErrPatientNotFound
		}
		return nil, apperror.Unexpected("failed to load patient", err)
	}
	return patient, nil
}

// CreatePatient registers a patient with a unique document
func (s *PatientService) CreatePatient(ctx context.Context, in PatientInput) (*models.Patient, error) {
	patient := &models.Patient{}
	if err := in.apply(patient); err != nil {
		return nil, err
	}

	if err := s.ensureDocumentFree(ctx, patient.Document, 0); err != nil {
		return nil, err
	}

	if err := s.patients.CreatePatient(ctx, patient); err != nil {
		return nil, s.writeError(err, "failed to create patient")
	}
	return patient, nil
}

// UpdatePatient replaces the writable fields of patient id
func (s *PatientService) UpdatePatient(ctx context.Context, id uint, in PatientInput) (*models.Patient, error) {
	patient, err := s.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(patient); err != nil {
		return nil, err
	}

	if err := s.ensureDocumentFree(ctx, patient.Document, patient.ID); err != nil {
		return nil, err
	}

	if err := s.patients.UpdatePatient(ctx, patient); err != nil {
		return nil, s.writeError(err, "failed to update patient")
	}
	return patient, nil
}

// DeletePatient removes a patient that no record references
func (s *PatientService) DeletePatient(ctx context.Context, actor *models.User, id uint) error {
	patient, err := s.GetPatient(ctx, id)
	if err != nil {
		return err
	}

	links, err := s.patients.PatientLinks(ctx, id)
	if err != nil {
		return apperror.Unexpected("failed to check patient records", err)
	}
	if links.Any() {
		return apperror.Conflict(apperror.CodeHasLinkedRecords,
			"patient has linked appointments, exams, consultations, active prescriptions or an occupied bed")
	}

	if err := s.patients.DeletePatient(ctx, id); err != nil {
		return apperror.Unexpected("failed to delete patient", err)
	}

	var userID *uint
	if actor != nil {
		userID = &actor.ID
	}
	details := fmt.Sprintf("Patient %d (%s) deleted", patient.ID, patient.Name)
	if err := s.audit.CreateAuditLog(ctx, userID, models.AuditPatientDelete, details); err != nil {
		s.log.Warn("failed to write audit log", zap.String("action", models.AuditPatientDelete), zap.Error(err))
	}
	return nil
}

func (s *PatientService) ensureDocumentFree(ctx context.Context, document string, excludeID uint) error {
	taken, err := s.patients.DocumentTaken(ctx, document, excludeID)
	if err != nil {
		return apperror.Unexpected("failed to check document", err)
	}
	if taken {
		return apperror.Conflict(apperror.CodeDuplicateKey, "document already registered")
	}
	return nil
}

func (s *PatientService) writeError(err error, message string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return apperror.Conflict(apperror.CodeDuplicateKey, "document already registered")
	}
	return apperror.Unexpected(message, err)
}
