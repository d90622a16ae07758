package repository

import (
	"context"

	"hospital-management-backend/internal/models"

	"gorm.io/gorm"
)

// SupplyFilter narrows a supply listing. LowStock keeps only supplies whose
// stock is below their minimum.
type SupplyFilter struct {
	Category string
	LowStock bool
}

type SupplyRepository struct {
	db *gorm.DB
}

func NewSupplyRepo(db *gorm.DB) *SupplyRepository {
	return &SupplyRepository{db: db}
}

// CreateSupply creates a new supply
func (r *SupplyRepository) CreateSupply(ctx context.Context, supply *models.Supply) error {
	return translate(r.db.WithContext(ctx).Create(supply).Error)
}

// FindSupplyByID retrieves a supply by ID
func (r *SupplyRepository) FindSupplyByID(ctx context.Context, id uint) (*models.Supply, error) {
	var supply models.Supply
	if err := r.db.WithContext(ctx).First(&supply, id).Error; err != nil {
		return nil, translate(err)
	}
	return &supply, nil
}

// ListSupplies retrieves supplies ordered by category and name
func (r *SupplyRepository) ListSupplies(ctx context.Context, filter SupplyFilter) ([]models.Supply, error) {
	query := r.db.WithContext(ctx).Model(&models.Supply{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.LowStock {
		query = query.Where("stock_quantity < minimum_quantity")
	}

	var supplies []models.Supply
	err := query.Order("category ASC, name ASC").Find(&supplies).Error
	return supplies, err
}

// UpdateSupplyLocked applies change under the supply's row lock and persists
// the stock, minimum and price columns if change succeeds.
func (r *SupplyRepository) UpdateSupplyLocked(ctx context.Context, id uint, change func(supply *models.Supply) error) (*models.Supply, error) {
	var supply models.Supply
	err := updateLocked(ctx, r.db, &supply, id, func() error {
		return change(&supply)
	}, "stock_quantity", "minimum_quantity", "unit_price")
	if err != nil {
		return nil, err
	}
	return &supply, nil
}
