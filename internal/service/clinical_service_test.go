package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"hospital-management-backend/internal/apperror"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/service/servicetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type clinicalFixture struct {
	patients      *servicetest.Patients
	professionals *servicetest.Professionals
	audit         *servicetest.AuditLog
	patientID     uint
	physicianID   uint
}

func newClinicalFixture(t *testing.T) *clinicalFixture {
	t.Helper()
	ctx := context.Background()
	f := &clinicalFixture{
		patients:      servicetest.NewPatients(),
		professionals: servicetest.NewProfessionals(),
		audit:         &servicetest.AuditLog{},
	}

	patient := &models.Patient{Name: "Maria Silva", Document: "123.456.789-00"}
	require.NoError(t, f.patients.CreatePatient(ctx, patient))
	f.patientID = patient.ID

	physician := &models.Professional{Name: "Dr. Costa", LicenseNumber: "CRM-42", Kind: models.KindPhysician, Active: true}
	require.NoError(t, f.professionals.CreateProfessional(ctx, physician))
	f.physicianID = physician.ID

	return f
}

func TestPatientService_CRUD(t *testing.T) {
	f := newClinicalFixture(t)
	service := NewPatientService(f.patients, f.audit, zap.NewNop())
	ctx := context.Background()

	created, err := service.CreatePatient(ctx, PatientInput{Name: "João", Document: "999", BirthDate: "1980-05-17"})
	require.NoError(t, err)
	require.NotNil(t, created.BirthDate)
	assert.Equal(t, time.Date(1980, 5, 17, 0, 0, 0, 0, time.UTC), *created.BirthDate)

	_, err = service.CreatePatient(ctx, PatientInput{Name: "Clone", Document: "999"})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	_, err = service.CreatePatient(ctx, PatientInput{Name: "No Doc"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = service.CreatePatient(ctx, PatientInput{Name: "Bad Date", Document: "1000", BirthDate: "17/05/1980"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	updated, err := service.UpdatePatient(ctx, created.ID, PatientInput{Name: "João Souza", Document: "999", Phone: "555-0100"})
	require.NoError(t, err)
	assert.Equal(t, "João Souza", updated.Name)
	assert.Nil(t, updated.BirthDate)

	_, err = service.UpdatePatient(ctx, created.ID, PatientInput{Name: "João", Document: "123.456.789-00"})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	_, err = service.GetPatient(ctx, 404)
	assert.ErrorIs(t, err, apperror.ErrPatientNotFound)

	patients, err := service.ListPatients(ctx)
	require.NoError(t, err)
	assert.Len(t, patients, 2)
}

func TestPatientService_DeleteRefusedWithLinkedRecords(t *testing.T) {
	tests := []struct {
		name  string
		links models.PatientLinks
	}{
		{name: "appointments", links: models.PatientLinks{Appointments: 1}},
		{name: "exams", links: models.PatientLinks{Exams: 2}},
		{name: "online consultations", links: models.PatientLinks{OnlineConsultations: 1}},
		{name: "active prescriptions", links: models.PatientLinks{ActivePrescriptions: 1}},
		{name: "occupied bed", links: models.PatientLinks{OccupiedBed: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newClinicalFixture(t)
			service := NewPatientService(f.patients, f.audit, zap.NewNop())
			f.patients.SetLinks(f.patientID, tt.links)

			err := service.DeletePatient(context.Background(), nil, f.patientID)
			assert.Equal(t, apperror.CodeHasLinkedRecords, apperror.CodeOf(err))

			_, err = service.GetPatient(context.Background(), f.patientID)
			assert.NoError(t, err)
		})
	}
}

func TestPatientService_Delete(t *testing.T) {
	f := newClinicalFixture(t)
	service := NewPatientService(f.patients, f.audit, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, service.DeletePatient(ctx, &models.User{ID: 1}, f.patientID))

	_, err := service.GetPatient(ctx, f.patientID)
	assert.ErrorIs(t, err, apperror.ErrPatientNotFound)

	err = service.DeletePatient(ctx, nil, f.patientID)
	assert.ErrorIs(t, err, apperror.ErrPatientNotFound)

	assert.Equal(t, []string{models.AuditPatientDelete}, f.audit.Actions())
}

func TestProfessionalService_Create(t *testing.T) {
	f := newClinicalFixture(t)
	service := NewProfessionalService(f.professionals)
	ctx := context.Background()

	created, err := service.CreateProfessional(ctx, ProfessionalInput{Name: "Enf. Lima", LicenseNumber: "COREN-7", Kind: "nurse"})
	require.NoError(t, err)
	assert.True(t, created.Active)

	_, err = service.CreateProfessional(ctx, ProfessionalInput{Name: "Dup", LicenseNumber: "CRM-42", Kind: "physician"})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	_, err = service.CreateProfessional(ctx, ProfessionalInput{Name: "Odd", LicenseNumber: "X-1", Kind: "wizard"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	professionals, err := service.ListProfessionals(ctx)
	require.NoError(t, err)
	assert.Len(t, professionals, 2)
}

func TestAppointmentService_Create(t *testing.T) {
	f := newClinicalFixture(t)
	service := NewAppointmentService(&servicetest.Appointments{}, f.patients, f.professionals)
	ctx := context.Background()

	appointment, err := service.CreateAppointment(ctx, AppointmentInput{
		PatientID:      f.patientID,
		ProfessionalID: f.physicianID,
		ScheduledAt:    "2026-03-02 14:30",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC), appointment.ScheduledAt)
	assert.Equal(t, models.AppointmentInPerson, appointment.Kind)
	assert.Equal(t, models.StatusScheduled, appointment.Status)

	tests := []struct {
		name     string
		in       AppointmentInput
		wantCode apperror.Code
	}{
		{
			name:     "bad timestamp",
			in:       AppointmentInput{PatientID: f.patientID, ProfessionalID: f.physicianID, ScheduledAt: "2026-03-02T14:30:00Z"},
			wantCode: apperror.CodeInvalidInput,
		},
		{
			name:     "bad kind",
			in:       AppointmentInput{PatientID: f.patientID, ProfessionalID: f.physicianID, ScheduledAt: "2026-03-02 14:30", Kind: "house_call"},
			wantCode: apperror.CodeInvalidInput,
		},
		{
			name:     "unknown patient",
			in:       AppointmentInput{PatientID: 404, ProfessionalID: f.physicianID, ScheduledAt: "2026-03-02 14:30"},
			wantCode: apperror.CodePatientNotFound,
		},
		{
			name:     "unknown professional",
			in:       AppointmentInput{PatientID: f.patientID, ProfessionalID: 404, ScheduledAt: "2026-03-02 14:30"},
			wantCode: apperror.CodeProfessionalNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateAppointment(ctx, tt.in)
			assert.Equal(t, tt.wantCode, apperror.CodeOf(err))
		})
	}
}

func TestExamService_RecordResult(t *testing.T) {
	f := newClinicalFixture(t)
	service := NewExamService(&servicetest.Exams{}, f.patients)
	ctx := context.Background()

	exam, err := service.CreateExam(ctx, f.patientID, "Blood count", "2026-03-03 08:00")
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, exam.Status)

	done, err := service.RecordResult(ctx, exam.ID, "Within reference range")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, done.Status)
	assert.Equal(t, "Within reference range", done.Result)

	_, err = service.RecordResult(ctx, 404, "x")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = service.RecordResult(ctx, exam.ID, " ")
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = service.CreateExam(ctx, 404, "X-ray", "2026-03-03 08:00")
	assert.ErrorIs(t, err, apperror.ErrPatientNotFound)
}

func TestConsultationService_Lifecycle(t *testing.T) {
	f := newClinicalFixture(t)
	service := NewConsultationService(&servicetest.Consultations{}, f.patients, f.professionals, "https://meet.example.org/")
	service.now = fixedClock(issuedAt)
	ctx := context.Background()

	consultation, err := service.CreateConsultation(ctx, ConsultationInput{
		PatientID:      f.patientID,
		ProfessionalID: f.physicianID,
		StartsAt:       "2026-03-01 08:00",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ConsultationScheduled, consultation.Status)
	assert.True(t, strings.HasPrefix(consultation.VideoLink, "https://meet.example.org/room/"))
	assert.Len(t, strings.TrimPrefix(consultation.VideoLink, "https://meet.example.org/room/"), 8)

	_, err = service.Finish(ctx, consultation.ID, FinishInput{Diagnosis: "flu"})
	assert.Equal(t, apperror.CodeInvalidTransition, apperror.CodeOf(err))

	started, err := service.Start(ctx, consultation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ConsultationInProgress, started.Status)

	_, err = service.Start(ctx, consultation.ID)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	finished, err := service.Finish(ctx, consultation.ID, FinishInput{ReportedSymptoms: "fever", Diagnosis: "flu", Notes: "rest"})
	require.NoError(t, err)
	assert.Equal(t, models.ConsultationFinished, finished.Status)
	require.NotNil(t, finished.EndsAt)
	assert.Equal(t, "flu", finished.Diagnosis)

	_, err = service.Start(ctx, 404)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestPrescriptionService_Lifecycle(t *testing.T) {
	f := newClinicalFixture(t)
	service := NewPrescriptionService(&servicetest.Prescriptions{}, f.patients, f.professionals, f.audit, zap.NewNop())
	ctx := context.Background()
	actor := &models.User{ID: 2, Role: models.RolePhysician}

	prescription, err := service.CreatePrescription(ctx, PrescriptionInput{
		PatientID:      f.patientID,
		ProfessionalID: f.physicianID,
		Medication:     "Amoxicillin",
		Dosage:         "500mg",
		Frequency:      "8/8h",
		Duration:       "7 days",
	})
	require.NoError(t, err)
	assert.True(t, prescription.Active)

	_, err = service.CreatePrescription(ctx, PrescriptionInput{PatientID: f.patientID, ProfessionalID: f.physicianID})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	active, err := service.ListActive(ctx, f.patientID)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	closed, err := service.Deactivate(ctx, actor, prescription.ID)
	require.NoError(t, err)
	assert.False(t, closed.Active)

	active, err = service.ListActive(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, active)

	_, err = service.Deactivate(ctx, actor, 404)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	assert.Equal(t, []string{models.AuditPrescriptionClose}, f.audit.Actions())
}
