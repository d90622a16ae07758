package service

import (
	"context"
	"math"
	"testing"

	"hospital-management-backend/internal/apperror"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"
	"hospital-management-backend/internal/service/servicetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSupplyFixture(t *testing.T) (*SupplyService, *servicetest.Supplies, *servicetest.AuditLog) {
	t.Helper()
	supplies := servicetest.NewSupplies()
	audit := &servicetest.AuditLog{}
	return NewSupplyService(supplies, audit, zap.NewNop()), supplies, audit
}

func supplyInput(name, category string, stock, minimum int) SupplyInput {
	return SupplyInput{
		Name:            name,
		Category:        category,
		StockQuantity:   stock,
		MinimumQuantity: minimum,
		UnitPrice:       2.5,
		Supplier:        "MedSupply",
		ExpiresOn:       "2027-01-31",
		Unit:            "box",
	}
}

func intPtr(v int) *int { return &v }

func TestSupplyService_ListFilters(t *testing.T) {
	svc, _, _ := newSupplyFixture(t)
	ctx := context.Background()
	admin := &models.User{ID: 1, Role: models.RoleAdmin}

	for _, in := range []SupplyInput{
		supplyInput("Dipyrone", "medication", 500, 100),
		supplyInput("Insulin", "medication", 5, 20),
		supplyInput("Gauze", "material", 10, 50),
		supplyInput("Gloves", "material", 300, 50),
	} {
		_, err := svc.CreateSupply(ctx, admin, in)
		require.NoError(t, err)
	}

	all, err := svc.ListSupplies(ctx, repository.SupplyFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	low, err := svc.ListSupplies(ctx, repository.SupplyFilter{LowStock: true})
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "Gauze", low[0].Name)
	assert.Equal(t, "Insulin", low[1].Name)
	for _, supply := range low {
		assert.Equal(t, models.StockLow, supply.StockStatus())
	}

	lowMedication, err := svc.ListSupplies(ctx, repository.SupplyFilter{Category: " medication ", LowStock: true})
	require.NoError(t, err)
	require.Len(t, lowMedication, 1)
	assert.Equal(t, "Insulin", lowMedication[0].Name)
}

func TestSupplyService_CreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *SupplyInput)
	}{
		{"missing name", func(in *SupplyInput) { in.Name = "  " }},
		{"missing unit", func(in *SupplyInput) { in.Unit = "" }},
		{"negative stock", func(in *SupplyInput) { in.StockQuantity = -1 }},
		{"negative minimum", func(in *SupplyInput) { in.MinimumQuantity = -5 }},
		{"negative price", func(in *SupplyInput) { in.UnitPrice = -0.01 }},
		{"nan price", func(in *SupplyInput) { in.UnitPrice = math.NaN() }},
		{"bad expiry", func(in *SupplyInput) { in.ExpiresOn = "31/01/2027" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, supplies, audit := newSupplyFixture(t)
			in := supplyInput("Gauze", "material", 10, 50)
			tt.mutate(&in)

			_, err := svc.CreateSupply(context.Background(), nil, in)
			require.Error(t, err)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

			stored, err := supplies.ListSupplies(context.Background(), repository.SupplyFilter{})
			require.NoError(t, err)
			assert.Empty(t, stored)
			assert.Empty(t, audit.Actions())
		})
	}
}

func TestSupplyService_UpdateStock(t *testing.T) {
	svc, _, audit := newSupplyFixture(t)
	ctx := context.Background()
	admin := &models.User{ID: 1, Role: models.RoleAdmin}

	created, err := svc.CreateSupply(ctx, admin, supplyInput("Gauze", "material", 10, 50))
	require.NoError(t, err)
	assert.Equal(t, models.StockLow, created.StockStatus())

	updated, err := svc.UpdateSupply(ctx, admin, created.ID, SupplyUpdate{StockQuantity: intPtr(80)})
	require.NoError(t, err)
	assert.Equal(t, 80, updated.StockQuantity)
	assert.Equal(t, 50, updated.MinimumQuantity)
	assert.Equal(t, 2.5, updated.UnitPrice)
	assert.Equal(t, models.StockOK, updated.StockStatus())

	updated, err = svc.UpdateSupply(ctx, admin, created.ID, SupplyUpdate{MinimumQuantity: intPtr(100)})
	require.NoError(t, err)
	assert.Equal(t, models.StockLow, updated.StockStatus())

	assert.Equal(t, []string{models.AuditSupplyCreate, models.AuditSupplyUpdate, models.AuditSupplyUpdate}, audit.Actions())
}

func TestSupplyService_UpdateRejected(t *testing.T) {
	svc, _, audit := newSupplyFixture(t)
	ctx := context.Background()

	created, err := svc.CreateSupply(ctx, nil, supplyInput("Gauze", "material", 10, 50))
	require.NoError(t, err)

	_, err = svc.UpdateSupply(ctx, nil, created.ID, SupplyUpdate{})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	price := -1.0
	_, err = svc.UpdateSupply(ctx, nil, created.ID, SupplyUpdate{StockQuantity: intPtr(40), UnitPrice: &price})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	stored, err := svc.GetSupply(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, stored.StockQuantity)
	assert.Equal(t, 2.5, stored.UnitPrice)

	_, err = svc.UpdateSupply(ctx, nil, 999, SupplyUpdate{StockQuantity: intPtr(1)})
	assert.ErrorIs(t, err, apperror.ErrSupplyNotFound)

	_, err = svc.GetSupply(ctx, 999)
	assert.ErrorIs(t, err, apperror.ErrSupplyNotFound)

	assert.Equal(t, []string{models.AuditSupplyCreate}, audit.Actions())
}
