package repository

import (
	"context"

	"hospital-management-backend/internal/models"

	"gorm.io/gorm"
)

// SlotFilter narrows the available-slot listing
type SlotFilter struct {
	ProfessionalID uint
	Date           string
	Mode           models.AttendanceMode
}

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepo(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// CreateSlot creates a new schedule slot
func (r *ScheduleRepository) CreateSlot(ctx context.Context, slot *models.ScheduleSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

// FindSlotByID retrieves a schedule slot by ID
func (r *ScheduleRepository) FindSlotByID(ctx context.Context, id uint) (*models.ScheduleSlot, error) {
	var slot models.ScheduleSlot
	if err := r.db.WithContext(ctx).First(&slot, id).Error; err != nil {
		return nil, translate(err)
	}
	return &slot, nil
}

// ListAvailableSlots retrieves unreserved slots. A specific mode filter also
// matches slots open to either mode.
func (r *ScheduleRepository) ListAvailableSlots(ctx context.Context, filter SlotFilter) ([]models.ScheduleSlot, error) {
	query := r.db.WithContext(ctx).Where("available = ?", true)
	if filter.ProfessionalID != 0 {
		query = query.Where("professional_id = ?", filter.ProfessionalID)
	}
	if filter.Date != "" {
		query = query.Where("date = ?", filter.Date)
	}
	if filter.Mode != "" && filter.Mode != models.ModeEither {
		query = query.Where("mode IN ?", []models.AttendanceMode{filter.Mode, models.ModeEither})
	}

	var slots []models.ScheduleSlot
	err := query.Order("date ASC, start_time ASC").Find(&slots).Error
	return slots, err
}

// UpdateSlotLocked applies transition to the slot while holding its row lock
func (r *ScheduleRepository) UpdateSlotLocked(ctx context.Context, id uint, transition func(slot *models.ScheduleSlot) error) (*models.ScheduleSlot, error) {
	var slot models.ScheduleSlot
	err := updateLocked(ctx, r.db, &slot, id, func() error {
		return transition(&slot)
	}, "available")
	if err != nil {
		return nil, err
	}
	return &slot, nil
}
