package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital-management-backend/internal/apperror"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"

	"go.uber.org/zap"
)

const (
	dateLayout     = "2006-01-02"
	clockLayout    = "15:04"
	dateTimeLayout = "2006-01-02 15:04"
)

// SlotStore persists schedule slots. UpdateSlotLocked must run transition
// and the write of its result atomically with respect to other callers.
type SlotStore interface {
	CreateSlot(ctx context.Context, slot *models.ScheduleSlot) error
	ListAvailableSlots(ctx context.Context, filter repository.SlotFilter) ([]models.ScheduleSlot, error)
	UpdateSlotLocked(ctx context.Context, id uint, transition func(slot *models.ScheduleSlot) error) (*models.ScheduleSlot, error)
}

// ProfessionalChecker resolves professional references
type ProfessionalChecker interface {
	ProfessionalExists(ctx context.Context, id uint) (bool, error)
}

type ScheduleService struct {
	slots         SlotStore
	professionals ProfessionalChecker
	audit         AuditRecorder
	log           *zap.Logger
}

func NewScheduleService(slots SlotStore, professionals ProfessionalChecker, audit AuditRecorder, log *zap.Logger) *ScheduleService {
	return &ScheduleService{
		slots:         slots,
		professionals: professionals,
		audit:         audit,
		log:           log,
	}
}

// SlotInput carries a new schedule slot
type SlotInput struct {
	ProfessionalID uint
	Date           string
	StartTime      string
	EndTime        string
	Mode           string
	Notes          string
}

// CreateSlot opens a new available slot for a professional
func (s *ScheduleService) CreateSlot(ctx context.Context, in SlotInput) (*models.ScheduleSlot, error) {
	if in.ProfessionalID == 0 || in.Date == "" || in.StartTime == "" || in.EndTime == "" {
		return nil, apperror.Validation("professional_id, date, start_time and end_time are required")
	}
	if _, err := time.Parse(dateLayout, in.Date); err != nil {
		return nil, apperror.Validation("invalid date format, use YYYY-MM-DD")
	}
	start, err := time.Parse(clockLayout, in.StartTime)
	if err != nil {
		return nil, apperror.Validation("invalid start_time format, use HH:MM")
	}
	end, err := time.Parse(clockLayout, in.EndTime)
	if err != nil {
		return nil, apperror.Validation("invalid end_time format, use HH:MM")
	}
	if !end.After(start) {
		return nil, apperror.Validation("end_time must be after start_time")
	}

	mode := models.AttendanceMode(in.Mode)
	if mode == "" {
		mode = models.ModeEither
	}
	if !mode.Valid() {
		return nil, apperror.Validation("invalid mode: must be one of in_person, online, either")
	}

	exists, err := s.professionals.ProfessionalExists(ctx, in.ProfessionalID)
	if err != nil {
		return nil, apperror.Unexpected("failed to check professional", err)
	}
	if !exists {
		return nil, apperror.ErrProfessionalNotFound
	}

	slot := &models.ScheduleSlot{
		ProfessionalID: in.ProfessionalID,
		Date:           in.Date,
		StartTime:      in.StartTime,
		EndTime:        in.EndTime,
		Mode:           mode,
		Available:      true,
		Notes:          in.Notes,
	}
	if err := s.slots.CreateSlot(ctx, slot); err != nil {
		return nil, apperror.Unexpected("failed to create schedule slot", err)
	}
	return slot, nil
}

// ListAvailable returns unreserved slots matching filter
func (s *ScheduleService) ListAvailable(ctx context.Context, filter repository.SlotFilter) ([]models.ScheduleSlot, error) {
	if filter.Mode != "" && !filter.Mode.Valid() {
		return nil, apperror.Validation("invalid mode: must be one of in_person, online, either")
	}
	if filter.Date != "" {
		if _, err := time.Parse(dateLayout, filter.Date); err != nil {
			return nil, apperror.Validation("invalid date format, use YYYY-MM-DD")
		}
	}

	slots, err := s.slots.ListAvailableSlots(ctx, filter)
	if err != nil {
		return nil, apperror.Unexpected("failed to list schedule slots", err)
	}
	return slots, nil
}

// Reserve consumes slotID. A slot is reserved at most once.
func (s *ScheduleService) Reserve(ctx context.Context, actor *models.User, slotID uint) (*models.ScheduleSlot, error) {
	slot, err := s.slots.UpdateSlotLocked(ctx, slotID, func(slot *models.ScheduleSlot) error {
		return slot.Reserve()
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.ErrSlotNotFound
		}
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.Unexpected("failed to reserve schedule slot", err)
	}

	var userID *uint
	if actor != nil {
		userID = &actor.ID
	}
	details := fmt.Sprintf("Slot %d (%s %s) reserved", slot.ID, slot.Date, slot.StartTime)
	if err := s.audit.CreateAuditLog(ctx, userID, models.AuditSlotReserve, details); err != nil {
		s.log.Warn("failed to write audit log", zap.String("action", models.AuditSlotReserve), zap.Error(err))
	}
	return slot, nil
}
