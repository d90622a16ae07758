package service

import (
	"context"
	"errors"
	"strings"

	"hospital-management-backend/internal/apperror"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"
)

// ExamStore persists exams
type ExamStore interface {
	ListExams(ctx context.Context) ([]models.Exam, error)
	CreateExam(ctx context.Context, exam *models.Exam) error
	RecordExamResult(ctx context.Context, id uint, result string) (*models.Exam, error)
}

type ExamService struct {
	exams    ExamStore
	patients PatientChecker
}

func NewExamService(exams ExamStore, patients PatientChecker) *ExamService {
	return &ExamService{
		exams:    exams,
		patients: patients,
	}
}

// ListExams returns exams in chronological order
func (s *ExamService) ListExams(ctx context.Context) ([]models.Exam, error) {
	exams, err := s.exams.ListExams(ctx)
	if err != nil {
		return nil, apperror.Unexpected("failed to list exams", err)
	}
	return exams, nil
}

// CreateExam schedules an exam for a patient
func (s *ExamService) CreateExam(ctx context.Context, patientID uint, examType, scheduledAt string) (*models.Exam, error) {
	examType = strings.TrimSpace(examType)
	if patientID == 0 || examType == "" || scheduledAt == "" {
		return nil, apperror.Validation("patient_id, exam_type and scheduled_at are required")
	}
	at, err := parseDateTime(scheduledAt, "scheduled_at")
	if err != nil {
		return nil, err
	}

	exists, err := s.patients.PatientExists(ctx, patientID)
	if err != nil {
		return nil, apperror.Unexpected("failed to check patient", err)
	}
	if !exists {
		return nil, apperror.ErrPatientNotFound
	}

	exam := &models.Exam{
		PatientID:   patientID,
		ExamType:    examType,
		ScheduledAt: at,
		Status:      models.StatusScheduled,
	}
	if err := s.exams.CreateExam(ctx, exam); err != nil {
		return nil, apperror.Unexpected("failed to create exam", err)
	}
	return exam, nil
}

// RecordResult stores the exam result and marks it done
func (s *ExamService) RecordResult(ctx context.Context, id uint, result string) (*models.Exam, error) {
	if strings.TrimSpace(result) == "" {
		return nil, apperror.Validation("result is required")
	}

	exam, err := s.exams.RecordExamResult(ctx, id, result)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound(apperror.CodeRecordNotFound, "exam not found")
		}
		return nil, apperror.Unexpected("failed to record exam result", err)
	}
	return exam, nil
}
