// Package routes defines HTTP routes for the hospital API.
package routes

import (
	"net/http"

	"hospital-management-backend/internal/apperror"
	"hospital-management-backend/internal/config"
	"hospital-management-backend/internal/handler"
	"hospital-management-backend/internal/middleware"
	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers mounted by Setup
type Handlers struct {
	Auth          *handler.AuthHandler
	Patients      *handler.PatientHandler
	Professionals *handler.ProfessionalHandler
	Care          *handler.CareHandler
	Beds          *handler.BedHandler
	Consultations *handler.ConsultationHandler
	Schedule      *handler.ScheduleHandler
	Supplies      *handler.SupplyHandler
	Audit         *handler.AuditHandler
}

// Route is one operation and the roles allowed to call it.
// A nil Policy marks a public route.
type Route struct {
	Method  string
	Path    string
	Policy  service.Policy
	Handler gin.HandlerFunc
}

// Table lists every API operation under /api/v1
func Table(h Handlers) []Route {
	return []Route{
		{http.MethodPost, "/auth/register", nil, h.Auth.Register},
		{http.MethodPost, "/auth/login", nil, h.Auth.Login},
		{http.MethodGet, "/auth/me", service.PolicyAuthenticated, h.Auth.Me},
		{http.MethodPut, "/auth/change-password", service.PolicyAuthenticated, h.Auth.ChangePassword},
		{http.MethodGet, "/auth/users", service.PolicyAdmin, h.Auth.ListUsers},
		{http.MethodPut, "/auth/users/:id/toggle", service.PolicyAdmin, h.Auth.ToggleUser},

		{http.MethodGet, "/patients", service.PolicyFrontDesk, h.Patients.ListPatients},
		{http.MethodPost, "/patients", service.PolicyFrontDesk, h.Patients.CreatePatient},
		{http.MethodGet, "/patients/:id", service.PolicyFrontDesk, h.Patients.GetPatient},
		{http.MethodPut, "/patients/:id", service.PolicyFrontDesk, h.Patients.UpdatePatient},
		{http.MethodDelete, "/patients/:id", service.PolicyClinicalStaff, h.Patients.DeletePatient},

		{http.MethodGet, "/professionals", service.PolicyAdmin, h.Professionals.ListProfessionals},
		{http.MethodPost, "/professionals", service.PolicyAdmin, h.Professionals.CreateProfessional},

		{http.MethodGet, "/appointments", service.PolicyFrontDesk, h.Care.ListAppointments},
		{http.MethodPost, "/appointments", service.PolicyFrontDesk, h.Care.CreateAppointment},

		{http.MethodGet, "/exams", service.PolicyPrescriber, h.Care.ListExams},
		{http.MethodPost, "/exams", service.PolicyPrescriber, h.Care.CreateExam},
		{http.MethodPut, "/exams/:id/result", service.PolicyPrescriber, h.Care.RecordExamResult},

		{http.MethodGet, "/beds", service.PolicyClinicalStaff, h.Beds.ListBeds},
		{http.MethodPost, "/beds", service.PolicyClinicalStaff, h.Beds.CreateBed},
		{http.MethodPut, "/beds/:id/occupy", service.PolicyClinicalStaff, h.Beds.OccupyBed},
		{http.MethodPut, "/beds/:id/release", service.PolicyClinicalStaff, h.Beds.ReleaseBed},

		{http.MethodGet, "/online-consultations", service.PolicyClinicalStaff, h.Consultations.ListConsultations},
		{http.MethodPost, "/online-consultations", service.PolicyClinicalStaff, h.Consultations.CreateConsultation},
		{http.MethodPut, "/online-consultations/:id/start", service.PolicyPrescriber, h.Consultations.StartConsultation},
		{http.MethodPut, "/online-consultations/:id/finish", service.PolicyPrescriber, h.Consultations.FinishConsultation},

		{http.MethodGet, "/prescriptions", service.PolicyPrescriber, h.Consultations.ListPrescriptions},
		{http.MethodPost, "/prescriptions", service.PolicyPrescriber, h.Consultations.CreatePrescription},
		{http.MethodPut, "/prescriptions/:id/deactivate", service.PolicyPrescriber, h.Consultations.DeactivatePrescription},

		{http.MethodGet, "/schedule-slots", service.PolicyFrontDesk, h.Schedule.ListAvailableSlots},
		{http.MethodPost, "/schedule-slots", service.PolicyClinicalStaff, h.Schedule.CreateSlot},
		{http.MethodPut, "/schedule-slots/:id/reserve", service.PolicyFrontDesk, h.Schedule.ReserveSlot},

		{http.MethodGet, "/supplies", service.PolicyAdmin, h.Supplies.ListSupplies},
		{http.MethodPost, "/supplies", service.PolicyAdmin, h.Supplies.CreateSupply},
		{http.MethodGet, "/supplies/low-stock", service.PolicyAdmin, h.Supplies.ListLowStock},
		{http.MethodGet, "/supplies/:id", service.PolicyAdmin, h.Supplies.GetSupply},
		{http.MethodPut, "/supplies/:id", service.PolicyAdmin, h.Supplies.UpdateSupply},

		{http.MethodGet, "/audit-logs", service.PolicyAdmin, h.Audit.ListAuditLogs},
	}
}

// Setup configures all HTTP routes for the application
func Setup(router *gin.Engine, h Handlers, access *middleware.AccessControlMiddleware, cfg *config.Config, log *zap.Logger) {
	router.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.CORS(cfg.CORS),
	)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "hospital-management-backend",
		})
	})

	v1 := router.Group("/api/v1")
	for _, route := range Table(h) {
		handlers := append(access.Chain(route.Policy), route.Handler)
		v1.Handle(route.Method, route.Path, handlers...)
	}

	router.NoRoute(func(c *gin.Context) {
		utils.ErrorResponse(c, http.StatusNotFound, apperror.KindNotFound, apperror.CodeRecordNotFound, "route not found")
	})
}
