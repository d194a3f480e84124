package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"theaifactory-backend/internal/delivery/http/response"
	"theaifactory-backend/pkg/apperror"
	"theaifactory-backend/pkg/logger"
)

// ErrorHandler maps errors appended to the gin context onto the JSON
// response envelope. Coded app errors pass their message through;
// anything else is logged and answered generically so internals never
// leak past the view boundary.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				logger.Log.Error("unhandled error", "path", c.FullPath(), "error", err)
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
