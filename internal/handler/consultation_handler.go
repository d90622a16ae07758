package handler

import (
	"hospital-management-backend/internal/middleware"
	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ConsultationHandler serves online consultations and prescriptions
type ConsultationHandler struct {
	consultationService *service.ConsultationService
	prescriptionService *service.PrescriptionService
}

func NewConsultationHandler(consultationService *service.ConsultationService, prescriptionService *service.PrescriptionService) *ConsultationHandler {
	return &ConsultationHandler{
		consultationService: consultationService,
		prescriptionService: prescriptionService,
	}
}

type CreateConsultationRequest struct {
	PatientID        uint   `json:"patient_id" binding:"required"`
	ProfessionalID   uint   `json:"professional_id" binding:"required"`
	StartsAt         string `json:"starts_at" binding:"required"`
	ReportedSymptoms string `json:"reported_symptoms"`
	Notes            string `json:"notes"`
}

type FinishConsultationRequest struct {
	ReportedSymptoms string `json:"reported_symptoms"`
	Diagnosis        string `json:"diagnosis"`
	Notes            string `json:"notes"`
}

type CreatePrescriptionRequest struct {
	PatientID            uint   `json:"patient_id" binding:"required"`
	ProfessionalID       uint   `json:"professional_id" binding:"required"`
	OnlineConsultationID *uint  `json:"online_consultation_id"`
	AppointmentID        *uint  `json:"appointment_id"`
	Medication           string `json:"medication" binding:"required,max=200"`
	Dosage               string `json:"dosage" binding:"required,max=100"`
	Frequency            string `json:"frequency" binding:"required,max=100"`
	Duration             string `json:"duration" binding:"required,max=50"`
	Instructions         string `json:"instructions"`
}

// ListConsultations retrieves all online consultations
func (h *ConsultationHandler) ListConsultations(c *gin.Context) {
	consultations, err := h.consultationService.ListConsultations(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"online_consultations": consultations,
		"count":                len(consultations),
	})
}

// CreateConsultation schedules an online consultation
func (h *ConsultationHandler) CreateConsultation(c *gin.Context) {
	var req CreateConsultationRequest
	if !bindJSON(c, &req) {
		return
	}

	consultation, err := h.consultationService.CreateConsultation(c.Request.Context(), service.ConsultationInput{
		PatientID:        req.PatientID,
		ProfessionalID:   req.ProfessionalID,
		StartsAt:         req.StartsAt,
		ReportedSymptoms: req.ReportedSymptoms,
		Notes:            req.Notes,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Online consultation created successfully", consultation)
}

// StartConsultation moves a consultation into progress
func (h *ConsultationHandler) StartConsultation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	consultation, err := h.consultationService.Start(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, consultation)
}

// FinishConsultation closes a consultation with its clinical notes
func (h *ConsultationHandler) FinishConsultation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req FinishConsultationRequest
	if !bindJSON(c, &req) {
		return
	}

	consultation, err := h.consultationService.Finish(c.Request.Context(), id, service.FinishInput{
		ReportedSymptoms: req.ReportedSymptoms,
		Diagnosis:        req.Diagnosis,
		Notes:            req.Notes,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, consultation)
}

// ListPrescriptions retrieves active prescriptions, optionally for ?patient_id=
func (h *ConsultationHandler) ListPrescriptions(c *gin.Context) {
	patientID, ok := parseQueryID(c, "patient_id")
	if !ok {
		return
	}

	prescriptions, err := h.prescriptionService.ListActive(c.Request.Context(), patientID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"prescriptions": prescriptions,
		"count":         len(prescriptions),
	})
}

// CreatePrescription issues a prescription
func (h *ConsultationHandler) CreatePrescription(c *gin.Context) {
	var req CreatePrescriptionRequest
	if !bindJSON(c, &req) {
		return
	}

	prescription, err := h.prescriptionService.CreatePrescription(c.Request.Context(), service.PrescriptionInput{
		PatientID:            req.PatientID,
		ProfessionalID:       req.ProfessionalID,
		OnlineConsultationID: req.OnlineConsultationID,
		AppointmentID:        req.AppointmentID,
		Medication:           req.Medication,
		Dosage:               req.Dosage,
		Frequency:            req.Frequency,
		Duration:             req.Duration,
		Instructions:         req.Instructions,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Prescription created successfully", prescription)
}

// DeactivatePrescription closes a prescription
func (h *ConsultationHandler) DeactivatePrescription(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	prescription, err := h.prescriptionService.Deactivate(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, prescription)
}
