package repository

import (
	"context"

	"hospital-management-backend/internal/models"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepo(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// ListAppointments retrieves appointments in chronological order
func (r *AppointmentRepository) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).Order("scheduled_at ASC").Find(&appointments).Error
	return appointments, err
}

// CreateAppointment creates a new appointment
func (r *AppointmentRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}
