package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"masar-backend/internal/delivery/http/response"
	"masar-backend/pkg/apperror"
	"masar-backend/pkg/logger"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				logger.Log.Error("request failed",
					"path", c.Request.URL.Path,
					"code", appErr.Code,
					"kind", appErr.Kind,
					"error", appErr.Err,
				)
			}
			var detail interface{}
			if appErr.Kind != "" {
				detail = gin.H{"kind": appErr.Kind}
			}
			response.Error(c, appErr.Code, appErr.Message, detail)
			return
		}

		// Never expose internal error details to clients. Log server-side
		// and return a generic message.
		logger.Log.Error("unhandled error", "path", c.Request.URL.Path, "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
