package respond

import (
	"github.com/gin-gonic/gin"

	"sales-assistant/internal/shared/telemetry"
)

// ErrorResponse is the error body returned by every endpoint.
// Detail is shown verbatim to end users by the dashboard.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

// Error logs and sends a standardized error response.
func Error(c *gin.Context, status int, code, detail string) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"detail":     detail,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if status >= 500 {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Detail: detail,
		Code:   code,
	})
}
