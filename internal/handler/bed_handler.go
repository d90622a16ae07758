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

type BedHandler struct {
	bedService *service.BedService
}

func NewBedHandler(bedService *service.BedService) *BedHandler {
	return &BedHandler{
		bedService: bedService,
	}
}

type CreateBedRequest struct {
	Number string `json:"number" binding:"required,max=10"`
	Sector string `json:"sector" binding:"required,max=50"`
}

type OccupyBedRequest struct {
	PatientID uint `json:"patient_id"`
}

// ListBeds lists beds, optionally filtered by ?sector= and ?occupied=
func (h *BedHandler) ListBeds(c *gin.Context) {
	filter := repository.BedFilter{Sector: c.Query("sector")}
	if raw := c.Query("occupied"); raw != "" {
		occupied, err := strconv.ParseBool(raw)
		if err != nil {
			utils.RespondError(c, apperror.Validation("invalid occupied filter"))
			return
		}
		filter.Occupied = &occupied
	}

	beds, err := h.bedService.ListBeds(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"beds":  beds,
		"count": len(beds),
	})
}

// CreateBed registers a new bed
func (h *BedHandler) CreateBed(c *gin.Context) {
	var req CreateBedRequest
	if !bindJSON(c, &req) {
		return
	}

	bed, err := h.bedService.CreateBed(c.Request.Context(), req.Number, req.Sector)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Bed created successfully", bed)
}

// OccupyBed assigns a bed to a patient
func (h *BedHandler) OccupyBed(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req OccupyBedRequest
	if !bindJSON(c, &req) {
		return
	}

	bed, err := h.bedService.Occupy(c.Request.Context(), middleware.CurrentUser(c), id, req.PatientID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, bed)
}

// ReleaseBed frees an occupied bed
func (h *BedHandler) ReleaseBed(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	bed, err := h.bedService.Release(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, bed)
}
