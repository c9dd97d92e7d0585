// Package middleware provides HTTP middleware components.
package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"stockadmin/internal/core/apperror"
	"stockadmin/pkg/logger"
)

// Recovery turns a handler panic into a generic 500.
// The stack is logged, never returned to the client.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error(c.Request.Context(), "panic recovered",
					"error", rec,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()),
				)

				// ErrorHandler has already unwound; render here.
				appErr := apperror.NewInternal(fmt.Errorf("panic: %v", rec))
				_ = c.Error(appErr)
				c.AbortWithStatusJSON(appErr.HTTPStatus, gin.H{
					"code":    appErr.Code,
					"message": appErr.Message,
					"details": gin.H{"request_id": c.GetString(ctxKeyRequestID)},
				})
			}
		}()
		c.Next()
	}
}
