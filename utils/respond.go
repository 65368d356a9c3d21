package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/Mammutor/NINA/models"
)

// Gin context keys set by the request id middleware.
const (
	RequestIDKey       = "request_id"
	ClientRequestIDKey = "client_request_id"
)

// RequestID returns the id set by the request id middleware, if any.
func RequestID(c *gin.Context) string {
	if rid, exists := c.Get(RequestIDKey); exists {
		if s, ok := rid.(string); ok {
			return s
		}
	}
	return ""
}

// RespondError writes a failed ApiResponse and aborts the request.
func RespondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, models.ApiResponse{
		Success:   false,
		Error:     &models.ApiError{Code: code, Message: message},
		RequestID: RequestID(c),
	})
}

// RespondOK writes a successful ApiResponse.
func RespondOK(c *gin.Context, status int, data interface{}, meta *models.MetaData) {
	c.JSON(status, models.ApiResponse{
		Success:   true,
		Data:      data,
		Meta:      meta,
		RequestID: RequestID(c),
	})
}
