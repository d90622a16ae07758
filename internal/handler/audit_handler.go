package handler

import (
	"strconv"

	"hospital-management-backend/internal/apperror"
	"hospital-management-backend/internal/repository"
	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService *service.AuditService
}

func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
	}
}

// ListAuditLogs lists recent audit entries filtered by ?user_id=, ?action= and ?limit=
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	userID, ok := parseQueryID(c, "user_id")
	if !ok {
		return
	}

	filter := repository.AuditFilter{UserID: userID, Action: c.Query("action")}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondError(c, apperror.Validation("invalid limit"))
			return
		}
		filter.Limit = limit
	}

	entries, err := h.auditService.ListAuditLogs(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"audit_logs": entries,
		"count":      len(entries),
	})
}
