package handler

import (
	"hospital-management-backend/internal/middleware"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"
	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	scheduleService *service.ScheduleService
}

func NewScheduleHandler(scheduleService *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
	}
}

type CreateSlotRequest struct {
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	StartTime      string `json:"start_time" binding:"required"`
	EndTime        string `json:"end_time" binding:"required"`
	Mode           string `json:"mode" binding:"omitempty,oneof=in_person online either"`
	Notes          string `json:"notes" binding:"max=200"`
}

// ListAvailableSlots lists open slots filtered by ?professional_id=, ?date= and ?mode=
func (h *ScheduleHandler) ListAvailableSlots(c *gin.Context) {
	professionalID, ok := parseQueryID(c, "professional_id")
	if !ok {
		return
	}

	slots, err := h.scheduleService.ListAvailable(c.Request.Context(), repository.SlotFilter{
		ProfessionalID: professionalID,
		Date:           c.Query("date"),
		Mode:           models.AttendanceMode(c.Query("mode")),
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"slots": slots,
		"count": len(slots),
	})
}

// CreateSlot opens a new slot in a professional's schedule
func (h *ScheduleHandler) CreateSlot(c *gin.Context) {
	var req CreateSlotRequest
	if !bindJSON(c, &req) {
		return
	}

	slot, err := h.scheduleService.CreateSlot(c.Request.Context(), service.SlotInput{
		ProfessionalID: req.ProfessionalID,
		Date:           req.Date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Mode:           req.Mode,
		Notes:          req.Notes,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Schedule slot created successfully", slot)
}

// ReserveSlot consumes an available slot
func (h *ScheduleHandler) ReserveSlot(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	slot, err := h.scheduleService.Reserve(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, slot)
}
