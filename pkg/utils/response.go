package utils

import (
	"errors"
	"net/http"

	"hospital-management-backend/internal/apperror"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the error part of the response envelope
type ErrorBody struct {
	Kind    apperror.Kind `json:"kind"`
	Code    apperror.Code `json:"code"`
	Message string        `json:"message"`
}

// SuccessResponse sends a standard success JSON response
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// CreatedResponse sends a success envelope with 201 Created
func CreatedResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// MessageResponse sends a simple message response
func MessageResponse(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

// ErrorResponse sends a standard error JSON response
func ErrorResponse(c *gin.Context, statusCode int, kind apperror.Kind, code apperror.Code, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": ErrorBody{
			Kind:    kind,
			Code:    code,
			Message: message,
		},
	})
}

// RespondError writes err using the envelope and the status mapped from its
// kind. Unexpected errors are attached to the context for the request logger
// and their details are not sent to the client.
func RespondError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	code := apperror.CodeOf(err)

	message := "internal server error"
	if kind != apperror.KindUnexpected {
		message = messageOf(err)
	} else {
		_ = c.Error(err)
	}

	ErrorResponse(c, StatusForKind(kind), kind, code, message)
}

// AbortWithError responds like RespondError and stops the handler chain
func AbortWithError(c *gin.Context, err error) {
	RespondError(c, err)
	c.Abort()
}

// StatusForKind maps an error kind onto its HTTP status code
func StatusForKind(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindAuthentication:
		return http.StatusUnauthorized
	case apperror.KindAuthorization:
		return http.StatusForbidden
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func messageOf(err error) string {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
