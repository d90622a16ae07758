package handler

import (
	"strconv"

	"hospital-management-backend/internal/apperror"
	"hospital-management-backend/internal/middleware"
	"hospital-management-backend/internal/repository"
	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type SupplyHandler struct {
	supplyService *service.SupplyService
}

func NewSupplyHandler(supplyService *service.SupplyService) *SupplyHandler {
	return &SupplyHandler{
		supplyService: supplyService,
	}
}

type CreateSupplyRequest struct {
	Name            string  `json:"name" binding:"required,max=120"`
	Category        string  `json:"category" binding:"required,max=50"`
	StockQuantity   int     `json:"stock_quantity" binding:"min=0"`
	MinimumQuantity int     `json:"minimum_quantity" binding:"min=0"`
	UnitPrice       float64 `json:"unit_price" binding:"min=0"`
	Supplier        string  `json:"supplier" binding:"required,max=100"`
	ExpiresOn       string  `json:"expires_on"`
	Unit            string  `json:"unit" binding:"required,max=100"`
}

type UpdateSupplyRequest struct {
	StockQuantity   *int     `json:"stock_quantity"`
	MinimumQuantity *int     `json:"minimum_quantity"`
	UnitPrice       *float64 `json:"unit_price"`
}

// ListSupplies lists supplies, optionally filtered by ?category= and ?low_stock=
func (h *SupplyHandler) ListSupplies(c *gin.Context) {
	filter := repository.SupplyFilter{Category: c.Query("category")}
	if raw := c.Query("low_stock"); raw != "" {
		lowStock, err := strconv.ParseBool(raw)
		if err != nil {
			utils.RespondError(c, apperror.Validation("invalid low_stock filter"))
			return
		}
		filter.LowStock = lowStock
	}
	h.list(c, filter)
}

// ListLowStock lists supplies whose stock is below their minimum
func (h *SupplyHandler) ListLowStock(c *gin.Context) {
	h.list(c, repository.SupplyFilter{LowStock: true})
}

func (h *SupplyHandler) list(c *gin.Context, filter repository.SupplyFilter) {
	supplies, err := h.supplyService.ListSupplies(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"supplies": supplies,
		"count":    len(supplies),
	})
}

// GetSupply retrieves a supply by ID
func (h *SupplyHandler) GetSupply(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	supply, err := h.supplyService.GetSupply(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, supply)
}

// CreateSupply registers a supply item
func (h *SupplyHandler) CreateSupply(c *gin.Context) {
	var req CreateSupplyRequest
	if !bindJSON(c, &req) {
		return
	}

	supply, err := h.supplyService.CreateSupply(c.Request.Context(), middleware.CurrentUser(c), service.SupplyInput{
		Name:            req.Name,
		Category:        req.Category,
		StockQuantity:   req.StockQuantity,
		MinimumQuantity: req.MinimumQuantity,
		UnitPrice:       req.UnitPrice,
		Supplier:        req.Supplier,
		ExpiresOn:       req.ExpiresOn,
		Unit:            req.Unit,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Supply created successfully", supply)
}

// UpdateSupply changes the stock, minimum or price of a supply
func (h *SupplyHandler) UpdateSupply(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateSupplyRequest
	if !bindJSON(c, &req) {
		return
	}

	supply, err := h.supplyService.UpdateSupply(c.Request.Context(), middleware.CurrentUser(c), id, service.SupplyUpdate{
		StockQuantity:   req.StockQuantity,
		MinimumQuantity: req.MinimumQuantity,
		UnitPrice:       req.UnitPrice,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, supply)
}
