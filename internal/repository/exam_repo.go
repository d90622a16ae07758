package repository

import (
	"context"

	"hospital-management-backend/internal/models"

	"gorm.io/gorm"
)

type ExamRepository struct {
	db *gorm.DB
}

func NewExamRepo(db *gorm.DB) *ExamRepository {
	return &ExamRepository{db: db}
}

// ListExams retrieves exams in chronological order
func (r *ExamRepository) ListExams(ctx context.Context) ([]models.Exam, error) {
	var exams []models.Exam
	err := r.db.WithContext(ctx).Order("scheduled_at ASC").Find(&exams).Error
	return exams, err
}

// CreateExam creates a new exam
func (r *ExamRepository) CreateExam(ctx context.Context, exam *models.Exam) error {
	return r.db.WithContext(ctx).Create(exam).Error
}

// RecordExamResult stores the result and marks the exam as done
func (r *ExamRepository) RecordExamResult(ctx context.Context, id uint, result string) (*models.Exam, error) {
	var exam models.Exam
	err := updateLocked(ctx, r.db, &exam, id, func() error {
		exam.Result = result
		exam.Status = models.StatusDone
		return nil
	}, "result", "status")
	if err != nil {
		return nil, err
	}
	return &exam, nil
}
