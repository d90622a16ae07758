package handler

import (
	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CareHandler serves appointments and exams
type CareHandler struct {
	appointmentService *service.AppointmentService
	examService        *service.ExamService
}

func NewCareHandler(appointmentService *service.AppointmentService, examService *service.ExamService) *CareHandler {
	return &CareHandler{
		appointmentService: appointmentService,
		examService:        examService,
	}
}

type CreateAppointmentRequest struct {
	PatientID      uint   `json:"patient_id" binding:"required"`
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	ScheduledAt    string `json:"scheduled_at" binding:"required"`
	Kind           string `json:"kind" binding:"omitempty,oneof=in_person telemedicine"`
	Notes          string `json:"notes"`
}

type CreateExamRequest struct {
	PatientID   uint   `json:"patient_id" binding:"required"`
	ExamType    string `json:"exam_type" binding:"required,max=100"`
	ScheduledAt string `json:"scheduled_at" binding:"required"`
}

type ExamResultRequest struct {
	Result string `json:"result" binding:"required"`
}

// ListAppointments retrieves all appointments
func (h *CareHandler) ListAppointments(c *gin.Context) {
	appointments, err := h.appointmentService.ListAppointments(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// CreateAppointment books a new appointment
func (h *CareHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	appointment, err := h.appointmentService.CreateAppointment(c.Request.Context(), service.AppointmentInput{
		PatientID:      req.PatientID,
		ProfessionalID: req.ProfessionalID,
		ScheduledAt:    req.ScheduledAt,
		Kind:           req.Kind,
		Notes:          req.Notes,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Appointment created successfully", appointment)
}

// ListExams retrieves all exams
func (h *CareHandler) ListExams(c *gin.Context) {
	exams, err := h.examService.ListExams(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"exams": exams,
		"count": len(exams),
	})
}

// CreateExam schedules a new exam
func (h *CareHandler) CreateExam(c *gin.Context) {
	var req CreateExamRequest
	if !bindJSON(c, &req) {
		return
	}

	exam, err := h.examService.CreateExam(c.Request.Context(), req.PatientID, req.ExamType, req.ScheduledAt)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Exam created successfully", exam)
}

// RecordExamResult stores an exam result
func (h *CareHandler) RecordExamResult(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ExamResultRequest
	if !bindJSON(c, &req) {
		return
	}

	exam, err := h.examService.RecordResult(c.Request.Context(), id, req.Result)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, exam)
}
