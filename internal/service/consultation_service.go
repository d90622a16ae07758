package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"hospital-management-backend/internal/apperror"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"

	"github.com/google/uuid"
)

// ConsultationStore persists online consultations
type ConsultationStore interface {
	ListConsultations(ctx context.Context) ([]models.OnlineConsultation, error)
	CreateConsultation(ctx context.Context, consultation *models.OnlineConsultation) error
	UpdateConsultationLocked(ctx context.Context, id uint, transition func(c *models.OnlineConsultation) error) (*models.OnlineConsultation, error)
}

type ConsultationService struct {
	consultations ConsultationStore
	patients      PatientChecker
	professionals ProfessionalChecker
	videoBaseURL  string
	now           func() time.Time
}

func NewConsultationService(consultations ConsultationStore, patients PatientChecker, professionals ProfessionalChecker, videoBaseURL string) *ConsultationService {
	return &ConsultationService{
		consultations: consultations,
		patients:      patients,
		professionals: professionals,
		videoBaseURL:  strings.TrimSuffix(videoBaseURL, "/"),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// ConsultationInput carries a new online consultation. StartsAt uses "YYYY-MM-DD HH:MM".
type ConsultationInput struct {
	PatientID        uint
	ProfessionalID   uint
	StartsAt         string
	ReportedSymptoms string
	Notes            string
}

// FinishInput carries the clinical notes recorded when a consultation ends
type FinishInput struct {
	ReportedSymptoms string
	Diagnosis        string
	Notes            string
}

// ListConsultations returns online consultations in chronological order
func (s *ConsultationService) ListConsultations(ctx context.Context) ([]models.OnlineConsultation, error) {
	consultations, err := s.consultations.ListConsultations(ctx)
	if err != nil {
		return nil, apperror.Unexpected("failed to list online consultations", err)
	}
	return consultations, nil
}

// CreateConsultation schedules an online consultation with a fresh video room
func (s *ConsultationService) CreateConsultation(ctx context.Context, in ConsultationInput) (*models.OnlineConsultation, error) {
	if in.PatientID == 0 || in.ProfessionalID == 0 || in.StartsAt == "" {
		return nil, apperror.Validation("patient_id, professional_id and starts_at are required")
	}
	startsAt, err := parseDateTime(in.StartsAt, "starts_at")
	if err != nil {
		return nil, err
	}

	if err := ensureParticipants(ctx, s.patients, s.professionals, in.PatientID, in.ProfessionalID); err != nil {
		return nil, err
	}

	consultation := &models.OnlineConsultation{
		PatientID:        in.PatientID,
		ProfessionalID:   in.ProfessionalID,
		StartsAt:         startsAt,
		VideoLink:        s.newVideoLink(),
		Status:           models.ConsultationScheduled,
		ReportedSymptoms: in.ReportedSymptoms,
		Notes:            in.Notes,
	}
	if err := s.consultations.CreateConsultation(ctx, consultation); err != nil {
		return nil, apperror.Unexpected("failed to create online consultation", err)
	}
	return consultation, nil
}

// Start moves a scheduled consultation into progress
func (s *ConsultationService) Start(ctx context.Context, id uint) (*models.OnlineConsultation, error) {
	at := s.now()
	return s.transition(ctx, id, func(c *models.OnlineConsultation) error {
		return c.Start(at)
	})
}

// Finish closes an in-progress consultation
func (s *ConsultationService) Finish(ctx context.Context, id uint, in FinishInput) (*models.OnlineConsultation, error) {
	at := s.now()
	return s.transition(ctx, id, func(c *models.OnlineConsultation) error {
		return c.Finish(at, in.ReportedSymptoms, in.Diagnosis, in.Notes)
	})
}

func (s *ConsultationService) transition(ctx context.Context, id uint, apply func(c *models.OnlineConsultation) error) (*models.OnlineConsultation, error) {
	consultation, err := s.consultations.UpdateConsultationLocked(ctx, id, apply)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound(apperror.CodeRecordNotFound, "online consultation not found")
		}
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.Unexpected("failed to update online consultation", err)
	}
	return consultation, nil
}

func (s *ConsultationService) newVideoLink() string {
	room := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return s.videoBaseURL + "/room/" + room
}
