package middleware

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"

	"stockadmin/internal/core/apperror"
	"stockadmin/internal/infrastructure/stockmanagement"
	"stockadmin/pkg/logger"
)

// ErrorHandler renders the last error registered on the context as JSON.
// Upstream failures become 502 with the upstream status in details;
// unknown errors become a generic 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := classify(c.Errors.Last().Err)
		if appErr.Err != nil {
			logger.Error(c.Request.Context(), "request error",
				"code", appErr.Code,
				"status", appErr.HTTPStatus,
				"cause", appErr.Err,
			)
		}

		body := gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
			"details": appErr.Details,
		}
		if appErr.MessageKey != "" {
			body["messageKey"] = appErr.MessageKey
		}
		c.JSON(appErr.HTTPStatus, body)
	}
}

func classify(err error) *apperror.AppError {
	if appErr, ok := apperror.AsAppError(err); ok {
		return appErr
	}

	var respErr *stockmanagement.ResponseError
	if errors.As(err, &respErr) {
		upstream := apperror.NewUpstream(err).WithDetail("upstream_status", respErr.StatusCode)
		if key := upstreamMessageKey(respErr.Body); key != "" {
			upstream = upstream.WithMessageKey(key)
		}
		return upstream
	}

	return apperror.NewInternal(err)
}

// upstreamMessageKey extracts the message key from an OpenLMIS error body.
func upstreamMessageKey(body []byte) string {
	var payload struct {
		MessageKey string `json:"messageKey"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.MessageKey
}
