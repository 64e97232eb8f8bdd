// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Object  interface{} `json:"object,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

type PaginatedAPIResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Object     interface{} `json:"object"`
	PageNumber int         `json:"pageNumber"`
	PageSize   int         `json:"pageSize"`
	TotalSize  int64       `json:"totalSize"`
	Errors     []string    `json:"errors,omitempty"`
}

func SuccessResponse(c *gin.Context, message string, object interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
		Object:  object,
	})
}

func CreatedResponse(c *gin.Context, message string, object interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: message,
		Object:  object,
	})
}

func PaginatedResponse(c *gin.Context, message string, object interface{}, pageNumber, pageSize int, totalSize int64) {
	c.JSON(http.StatusOK, PaginatedAPIResponse{
		Success:    true,
		Message:    message,
		Object:     object,
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalSize:  totalSize,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string, errors []string) {
	if len(errors) == 0 {
		errors = []string{message}
	}
	c.JSON(statusCode, APIResponse{
		Success: false,
		Message: message,
		Errors:  errors,
	})
}

func BadRequestResponse(c *gin.Context, message string, errors []string) {
	ErrorResponse(c, http.StatusBadRequest, message, errors)
}

func UnauthorizedResponse(c *gin.Context, message string, errors []string) {
	if message == "" {
		message = "Authentication required"
	}
	ErrorResponse(c, http.StatusUnauthorized, message, errors)
}

func ForbiddenResponse(c *gin.Context, message string, errors []string) {
	if message == "" {
		message = "Access denied"
	}
	ErrorResponse(c, http.StatusForbidden, message, errors)
}

func NotFoundResponse(c *gin.Context, message string, errors []string) {
	ErrorResponse(c, http.StatusNotFound, message, errors)
}

func InternalErrorResponse(c *gin.Context, errors []string) {
	ErrorResponse(c, http.StatusInternalServerError, "Internal server error", errors)
}

func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userID, exists := c.Get("user_id"); exists {
		if userIDStr, ok := userID.(string); ok {
			return userIDStr, true
		}
	}
	return "", false
}

func GetUserRoleFromContext(c *gin.Context) (string, bool) {
	if role, exists := c.Get("role"); exists {
		if roleStr, ok := role.(string); ok {
			return roleStr, true
		}
	}
	return "", false
}
