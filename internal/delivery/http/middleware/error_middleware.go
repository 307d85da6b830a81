package middleware

import (
	"errors"
	"net/http"

	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/logger"
	"go-portfolio-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// ErrorHandler maps errors attached to the context onto the uniform
// response envelope. Validation errors keep their field detail; AppErrors
// keep their status and message; anything else becomes a generic 500 so
// internal details never reach the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var vErr *validation.Error
		if errors.As(err, &vErr) {
			response.Error(c, http.StatusBadRequest, "Validation failed", vErr.Fields)
			return
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				logger.Log.Error("request failed", "status", appErr.Code, "error", appErr.Err)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		logger.Log.Error("unhandled error", "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
