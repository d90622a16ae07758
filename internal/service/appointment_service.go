package service

import (
	"context"
	"time"

	"hospital-management-backend/internal/apperror"
	"hospital-management-backend/internal/models"
)

// AppointmentStore persists appointments
type AppointmentStore interface {
	ListAppointments(ctx context.Context) ([]models.Appointment, error)
	CreateAppointment(ctx context.Context, appointment *models.Appointment) error
}

type AppointmentService struct {
	appointments  AppointmentStore
	patients      PatientChecker
	professionals ProfessionalChecker
}

func NewAppointmentService(appointments AppointmentStore, patients PatientChecker, professionals ProfessionalChecker) *AppointmentService {
	return &AppointmentService{
		appointments:  appointments,
		patients:      patients,
		professionals: professionals,
	}
}

// AppointmentInput carries a new appointment. ScheduledAt uses "YYYY-MM-DD HH:MM".
type AppointmentInput struct {
	PatientID      uint
	ProfessionalID uint
	ScheduledAt    string
	Kind           string
	Notes          string
}

// ListAppointments returns appointments in chronological order
func (s *AppointmentService) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	appointments, err := s.appointments.ListAppointments(ctx)
	if err != nil {
		return nil, apperror.Unexpected("failed to list appointments", err)
	}
	return appointments, nil
}

// CreateAppointment books a patient with a professional
func (s *AppointmentService) CreateAppointment(ctx context.Context, in AppointmentInput) (*models.Appointment, error) {
	if in.PatientID == 0 || in.ProfessionalID == 0 || in.ScheduledAt == "" {
		return nil, apperror.Validation("patient_id, professional_id and scheduled_at are required")
	}
	scheduledAt, err := parseDateTime(in.ScheduledAt, "scheduled_at")
	if err != nil {
		return nil, err
	}

	kind := models.AppointmentKind(in.Kind)
	switch kind {
	case "":
		kind = models.AppointmentInPerson
	case models.AppointmentInPerson, models.AppointmentTelemedicine:
	default:
		return nil, apperror.Validation("invalid kind: must be one of in_person, telemedicine")
	}

	if err := ensureParticipants(ctx, s.patients, s.professionals, in.PatientID, in.ProfessionalID); err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		PatientID:      in.PatientID,
		ProfessionalID: in.ProfessionalID,
		ScheduledAt:    scheduledAt,
		Kind:           kind,
		Status:         models.StatusScheduled,
		Notes:          in.Notes,
	}
	if err := s.appointments.CreateAppointment(ctx, appointment); err != nil {
		return nil, apperror.Unexpected("failed to create appointment", err)
	}
	return appointment, nil
}

// parseDateTime reads a "YYYY-MM-DD HH:MM" value as UTC
func parseDateTime(value, field string) (time.Time, error) {
	parsed, err := time.ParseInLocation(dateTimeLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, apperror.Validation("invalid " + field + " format, use YYYY-MM-DD HH:MM")
	}
	return parsed, nil
}

// ensureParticipants checks that both references resolve. A zero
// professionalID is skipped.
func ensureParticipants(ctx context.Context, patients PatientChecker, professionals ProfessionalChecker, patientID, professionalID uint) error {
	exists, err := patients.PatientExists(ctx, patientID)
	if err != nil {
		return apperror.Unexpected("failed to check patient", err)
	}
	if !exists {
		return apperror.ErrPatientNotFound
	}

	if professionalID == 0 {
		return nil
	}
	exists, err = professionals.ProfessionalExists(ctx, professionalID)
	if err != nil {
		return apperror.Unexpected("failed to check professional", err)
	}
	if !exists {
		return apperror.ErrProfessionalNotFound
	}
	return nil
}
