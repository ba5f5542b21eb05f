package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   string    `json:"error"`
	Code    ErrorKind `json:"code"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error: "internal server error",
					Code:  KindInternal,
				})
			}
		}()
		c.Next()
	}
}

// RespondError writes err using the status its kind maps to.
func RespondError(c *gin.Context, err error) {
	kind := KindOf(err)
	status := HTTPStatus(kind)

	logger := GetLogger()
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.String("kind", string(kind)), zap.Error(err))
	} else {
		logger.Debug("Request rejected", zap.String("path", c.Request.URL.Path), zap.String("kind", string(kind)), zap.Error(err))
	}

	c.JSON(status, ErrorResponse{Error: MessageOf(err), Code: kind})
}

// JSONError sends a standardized JSON error response for an explicit status.
func JSONError(c *gin.Context, status int, kind ErrorKind, message string) {
	c.JSON(status, ErrorResponse{Error: message, Code: kind})
}
