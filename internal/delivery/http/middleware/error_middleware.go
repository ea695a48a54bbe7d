package middleware

import (
	"errors"
	"net/http"

	"heyjob-backend/internal/delivery/http/response"
	"heyjob-backend/internal/domain"
	"heyjob-backend/pkg/apperror"
	"heyjob-backend/pkg/logger"
	"heyjob-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		requestID := c.GetString(string(domain.KeyRequestID))

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			logger.Log.Error("Unhandled error", "request_id", requestID, "path", c.FullPath(), "error", err)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			return
		}

		switch appErr.Kind {
		case apperror.KindInternal, apperror.KindUnavailable:
			// Cause and stack stay server-side
			logger.Log.Error(appErr.Message,
				"request_id", requestID,
				"path", c.FullPath(),
				"error", appErr.Err,
				"stack", string(appErr.Stack),
			)
			if appErr.Kind == apperror.KindUnavailable {
				c.Header("Retry-After", "1")
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
		case apperror.KindValidation:
			var details interface{}
			if appErr.Err != nil {
				details = validation.FormatValidationErrors(appErr.Err)
			}
			response.Error(c, appErr.Code, appErr.Message, details)
		default:
			response.Error(c, appErr.Code, appErr.Message, nil)
		}
	}
}
