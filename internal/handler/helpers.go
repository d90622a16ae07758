package handler

import (
	"strconv"

	"hospital-management-backend/internal/apperror"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// parseID reads a positive numeric path parameter. On failure it writes a
// validation error and reports false.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.RespondError(c, apperror.Validation("invalid "+name))
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes and validates the request body into req. On failure it
// writes a validation error and reports false.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.RespondError(c, apperror.Validation("invalid request body: "+err.Error()))
		return false
	}
	return true
}

// parseQueryID reads an optional numeric query parameter. An absent value is 0.
func parseQueryID(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		utils.RespondError(c, apperror.Validation("invalid "+name))
		return 0, false
	}
	return uint(id), true
}
