package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"hospital-management-backend/internal/apperror"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"

	"go.uber.org/zap"
)

// SupplyStore persists supplies. UpdateSupplyLocked must run change and the
// write of its result atomically with respect to other callers.
type SupplyStore interface {
	CreateSupply(ctx context.Context, supply *models.Supply) error
	FindSupplyByID(ctx context.Context, id uint) (*models.Supply, error)
	ListSupplies(ctx context.Context, filter repository.SupplyFilter) ([]models.Supply, error)
	UpdateSupplyLocked(ctx context.Context, id uint, change func(supply *models.Supply) error) (*models.Supply, error)
}

type SupplyInput struct {
	Name            string
	Category        string
	StockQuantity   int
	MinimumQuantity int
	UnitPrice       float64
	Supplier        string
	ExpiresOn       string
	Unit            string
}

// SupplyUpdate changes the fields that are set and leaves the others alone
type SupplyUpdate struct {
	StockQuantity   *int
	MinimumQuantity *int
	UnitPrice       *float64
}

func (u SupplyUpdate) empty() bool {
	return u.StockQuantity == nil && u.MinimumQuantity == nil && u.UnitPrice == nil
}

type SupplyService struct {
	supplies SupplyStore
	audit    AuditRecorder
	log      *zap.Logger
}

func NewSupplyService(supplies SupplyStore, audit AuditRecorder, log *zap.Logger) *SupplyService {
	return &SupplyService{
		supplies: supplies,
		audit:    audit,
		log:      log,
	}
}

// ListSupplies returns supplies matching filter
func (s *SupplyService) ListSupplies(ctx context.Context, filter repository.SupplyFilter) ([]models.Supply, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	supplies, err := s.supplies.ListSupplies(ctx, filter)
	if err != nil {
		return nil, apperror.Unexpected("failed to list supplies", err)
	}
	return supplies, nil
}

// GetSupply retrieves one supply
func (s *SupplyService) GetSupply(ctx context.Context, id uint) (*models.Supply, error) {
	supply, err := s.supplies.FindSupplyByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.ErrSupplyNotFound
		}
		return nil, apperror.Unexpected("failed to get supply", err)
	}
	return supply, nil
}

// CreateSupply registers a supply item
func (s *SupplyService) CreateSupply(ctx context.Context, actor *models.User, in SupplyInput) (*models.Supply, error) {
	supply := &models.Supply{
		Name:            strings.TrimSpace(in.Name),
		Category:        strings.TrimSpace(in.Category),
		StockQuantity:   in.StockQuantity,
		MinimumQuantity: in.MinimumQuantity,
		UnitPrice:       in.UnitPrice,
		Supplier:        strings.TrimSpace(in.Supplier),
		ExpiresOn:       strings.TrimSpace(in.ExpiresOn),
		Unit:            strings.TrimSpace(in.Unit),
	}

	if supply.Name == "" || supply.Category == "" || supply.Supplier == "" || supply.Unit == "" {
		return nil, apperror.Validation("name, category, supplier and unit are required")
	}
	if err := validateStock(supply.StockQuantity, supply.MinimumQuantity, supply.UnitPrice); err != nil {
		return nil, err
	}
	if supply.ExpiresOn != "" {
		if _, err := time.Parse(dateLayout, supply.ExpiresOn); err != nil {
			return nil, apperror.Validation("expires_on must use the YYYY-MM-DD format")
		}
	}

	if err := s.supplies.CreateSupply(ctx, supply); err != nil {
		return nil, apperror.Unexpected("failed to create supply", err)
	}

	s.record(ctx, actor, models.AuditSupplyCreate, fmt.Sprintf("Supply %s created with stock %d", supply.Name, supply.StockQuantity))
	return supply, nil
}

// UpdateSupply changes stock, minimum or price of a supply
func (s *SupplyService) UpdateSupply(ctx context.Context, actor *models.User, id uint, in SupplyUpdate) (*models.Supply, error) {
	if in.empty() {
		return nil, apperror.Validation("one of stock_quantity, minimum_quantity or unit_price is required")
	}

	supply, err := s.supplies.UpdateSupplyLocked(ctx, id, func(supply *models.Supply) error {
		if in.StockQuantity != nil {
			supply.StockQuantity = *in.StockQuantity
		}
		if in.MinimumQuantity != nil {
			supply.MinimumQuantity = *in.MinimumQuantity
		}
		if in.UnitPrice != nil {
			supply.UnitPrice = *in.UnitPrice
		}
		return validateStock(supply.StockQuantity, supply.MinimumQuantity, supply.UnitPrice)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.ErrSupplyNotFound
		}
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.Unexpected("failed to update supply", err)
	}

	s.record(ctx, actor, models.AuditSupplyUpdate, fmt.Sprintf("Supply %s now has stock %d (minimum %d)", supply.Name, supply.StockQuantity, supply.MinimumQuantity))
	return supply, nil
}

func validateStock(stock, minimum int, price float64) error {
	if stock < 0 || minimum < 0 {
		return apperror.Validation("stock_quantity and minimum_quantity must not be negative")
	}
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return apperror.Validation("unit_price must be a non-negative number")
	}
	return nil
}

func (s *SupplyService) record(ctx context.Context, actor *models.User, action, details string) {
	var userID *uint
	if actor != nil {
		userID = &actor.ID
	}
	if err := s.audit.CreateAuditLog(ctx, userID, action, details); err != nil {
		s.log.Warn("failed to write audit log", zap.String("action", action), zap.Error(err))
	}
}
