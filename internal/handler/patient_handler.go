package handler

import (
	"hospital-management-backend/internal/middleware"
	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	patientService *service.PatientService
}

func NewPatientHandler(patientService *service.PatientService) *PatientHandler {
	return &PatientHandler{
		patientService: patientService,
	}
}

type PatientRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Document  string `json:"document" binding:"required,max=20"`
	Phone     string `json:"phone" binding:"max=20"`
	Email     string `json:"email" binding:"omitempty,email,max=100"`
	Address   string `json:"address"`
	BirthDate string `json:"birth_date"`
}

func (r PatientRequest) input() service.PatientInput {
	return service.PatientInput{
		Name:      r.Name,
		Document:  r.Document,
		Phone:     r.Phone,
		Email:     r.Email,
		Address:   r.Address,
		BirthDate: r.BirthDate,
	}
}

// ListPatients retrieves all patients
func (h *PatientHandler) ListPatients(c *gin.Context) {
	patients, err := h.patientService.ListPatients(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"patients": patients,
		"count":    len(patients),
	})
}

// GetPatient retrieves a patient by ID
func (h *PatientHandler) GetPatient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	patient, err := h.patientService.GetPatient(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, patient)
}

// CreatePatient registers a new patient
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req PatientRequest
	if !bindJSON(c, &req) {
		return
	}

	patient, err := h.patientService.CreatePatient(c.Request.Context(), req.input())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Patient created successfully", patient)
}

// UpdatePatient replaces a patient's fields
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req PatientRequest
	if !bindJSON(c, &req) {
		return
	}

	patient, err := h.patientService.UpdatePatient(c.Request.Context(), id, req.input())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, patient)
}

// DeletePatient removes a patient without linked records
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.patientService.DeletePatient(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.MessageResponse(c, "Patient deleted successfully")
}
