package handler

import (
	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ProfessionalHandler struct {
	professionalService *service.ProfessionalService
}

func NewProfessionalHandler(professionalService *service.ProfessionalService) *ProfessionalHandler {
	return &ProfessionalHandler{
		professionalService: professionalService,
	}
}

type CreateProfessionalRequest struct {
	Name          string `json:"name" binding:"required,max=100"`
	Specialty     string `json:"specialty" binding:"max=50"`
	LicenseNumber string `json:"license_number" binding:"required,max=20"`
	Phone         string `json:"phone" binding:"max=20"`
	Email         string `json:"email" binding:"omitempty,email,max=100"`
	Kind          string `json:"kind" binding:"required,oneof=physician nurse technician"`
}

// ListProfessionals retrieves active professionals
func (h *ProfessionalHandler) ListProfessionals(c *gin.Context) {
	professionals, err := h.professionalService.ListProfessionals(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"professionals": professionals,
		"count":         len(professionals),
	})
}

// CreateProfessional registers a new professional
func (h *ProfessionalHandler) CreateProfessional(c *gin.Context) {
	var req CreateProfessionalRequest
	if !bindJSON(c, &req) {
		return
	}

	professional, err := h.professionalService.CreateProfessional(c.Request.Context(), service.ProfessionalInput{
		Name:          req.Name,
		Specialty:     req.Specialty,
		LicenseNumber: req.LicenseNumber,
		Phone:         req.Phone,
		Email:         req.Email,
		Kind:          req.Kind,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Professional created successfully", professional)
}
