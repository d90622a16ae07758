package repository

import (
	"context"

	"hospital-management-backend/internal/models"

	"gorm.io/gorm"
)

// BedFilter narrows a bed listing
type BedFilter struct {
	Sector   string
	Occupied *bool
}

type BedRepository struct {
	db *gorm.DB
}

func NewBedRepo(db *gorm.DB) *BedRepository {
	return &BedRepository{db: db}
}

// CreateBed creates a new bed
func (r *BedRepository) CreateBed(ctx context.Context, bed *models.Bed) error {
	return translate(r.db.WithContext(ctx).Create(bed).Error)
}

// BedNumberExists reports whether a bed already uses the number
func (r *BedRepository) BedNumberExists(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Bed{}).Where("number = ?", number).Count(&count).Error
	return count > 0, err
}

// FindBedByID retrieves a bed by ID
func (r *BedRepository) FindBedByID(ctx context.Context, id uint) (*models.Bed, error) {
	var bed models.Bed
	if err := r.db.WithContext(ctx).First(&bed, id).Error; err != nil {
		return nil, translate(err)
	}
	return &bed, nil
}

// ListBeds retrieves beds ordered by sector and number
func (r *BedRepository) ListBeds(ctx context.Context, filter BedFilter) ([]models.Bed, error) {
	query := r.db.WithContext(ctx).Model(&models.Bed{})
	if filter.Sector != "" {
		query = query.Where("sector = ?", filter.Sector)
	}
	if filter.Occupied != nil {
		query = query.Where("occupied = ?", *filter.Occupied)
	}

	var beds []models.Bed
	err := query.Order("sector ASC, number ASC").Find(&beds).Error
	return beds, err
}

// UpdateBedLocked applies transition to the bed while holding its row lock
// and persists the occupancy columns if transition succeeds.
func (r *BedRepository) UpdateBedLocked(ctx context.Context, id uint, transition func(bed *models.Bed) error) (*models.Bed, error) {
	var bed models.Bed
	err := updateLocked(ctx, r.db, &bed, id, func() error {
		return transition(&bed)
	}, "occupied", "patient_id", "occupied_at")
	if err != nil {
		return nil, err
	}
	return &bed, nil
}
