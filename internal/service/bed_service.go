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

// BedStore persists beds. UpdateBedLocked must run transition and the
// write of its result atomically with respect to other callers.
type BedStore interface {
	CreateBed(ctx context.Context, bed *models.Bed) error
	BedNumberExists(ctx context.Context, number string) (bool, error)
	FindBedByID(ctx context.Context, id uint) (*models.Bed, error)
	ListBeds(ctx context.Context, filter repository.BedFilter) ([]models.Bed, error)
	UpdateBedLocked(ctx context.Context, id uint, transition func(bed *models.Bed) error) (*models.Bed, error)
}

// PatientChecker resolves patient references
type PatientChecker interface {
	PatientExists(ctx context.Context, id uint) (bool, error)
}

type BedService struct {
	beds     BedStore
	patients PatientChecker
	audit    AuditRecorder
	log      *zap.Logger
	now      func() time.Time
}

func NewBedService(beds BedStore, patients PatientChecker, audit AuditRecorder, log *zap.Logger) *BedService {
	return &BedService{
		beds:     beds,
		patients: patients,
		audit:    audit,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source used for occupation timestamps
func (s *BedService) WithClock(now func() time.Time) *BedService {
	s.now = now
	return s
}

// CreateBed registers a new available bed
func (s *BedService) CreateBed(ctx context.Context, number, sector string) (*models.Bed, error) {
	number = strings.TrimSpace(number)
	sector = strings.TrimSpace(sector)
	if number == "" || sector == "" {
		return nil, apperror.Validation("number and sector are required")
	}

	exists, err := s.beds.BedNumberExists(ctx, number)
	if err != nil {
		return nil, apperror.Unexpected("failed to check bed number", err)
	}
	if exists {
		return nil, apperror.Conflict(apperror.CodeDuplicateKey, "bed number already exists")
	}

	bed := &models.Bed{Number: number, Sector: sector}
	if err := s.beds.CreateBed(ctx, bed); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict(apperror.CodeDuplicateKey, "bed number already exists")
		}
		return nil, apperror.Unexpected("failed to create bed", err)
	}
	return bed, nil
}

// ListBeds returns beds matching filter
func (s *BedService) ListBeds(ctx context.Context, filter repository.BedFilter) ([]models.Bed, error) {
	beds, err := s.beds.ListBeds(ctx, filter)
	if err != nil {
		return nil, apperror.Unexpected("failed to list beds", err)
	}
	return beds, nil
}

// Occupy assigns bedID to patientID.
// An occupied bed is reported before any problem with patientID.
// The occupied check, the patient check and the write share one locked
// transaction, so two concurrent calls on one bed cannot both succeed.
func (s *BedService) Occupy(ctx context.Context, actor *models.User, bedID, patientID uint) (*models.Bed, error) {
	at := s.now()
	bed, err := s.beds.UpdateBedLocked(ctx, bedID, func(bed *models.Bed) error {
		if bed.Occupied {
			return apperror.ErrAlreadyOccupied
		}
		if patientID == 0 {
			return apperror.Validation("patient_id is required")
		}
		exists, err := s.patients.PatientExists(ctx, patientID)
		if err != nil {
			return fmt.Errorf("failed to check patient: %w", err)
		}
		if !exists {
			return apperror.ErrPatientNotFound
		}
		return bed.Occupy(patientID, at)
	})
	if err != nil {
		return nil, s.transitionError(err, "failed to occupy bed")
	}

	s.record(ctx, actor, models.AuditBedOccupy, fmt.Sprintf("Bed %s occupied by patient %d", bed.Number, patientID))
	return bed, nil
}

// Release returns bedID to the available state
func (s *BedService) Release(ctx context.Context, actor *models.User, bedID uint) (*models.Bed, error) {
	bed, err := s.beds.UpdateBedLocked(ctx, bedID, func(bed *models.Bed) error {
		return bed.Release()
	})
	if err != nil {
		return nil, s.transitionError(err, "failed to release bed")
	}

	s.record(ctx, actor, models.AuditBedRelease, fmt.Sprintf("Bed %s released", bed.Number))
	return bed, nil
}

func (s *BedService) transitionError(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.ErrBedNotFound
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Unexpected(message, err)
}

func (s *BedService) record(ctx context.Context, actor *models.User, action, details string) {
	var userID *uint
	if actor != nil {
		userID = &actor.ID
	}
	if err := s.audit.CreateAuditLog(ctx, userID, action, details); err != nil {
		s.log.Warn("failed to write audit log", zap.String("action", action), zap.Error(err))
	}
}
