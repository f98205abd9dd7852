package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"sales-assistant/internal/shared/server/respond"
	"sales-assistant/internal/shared/telemetry"
)

// Recovery turns a handler panic into a 500 with the standard error body.
// A panic during a menu upload is logged with the analysis context, if any.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			fields := map[string]any{
				"request_id": RequestIDFromContext(c),
				"error":      fmt.Sprint(rec),
				"stack":      string(debug.Stack()),
				"path":       c.Request.URL.Path,
				"method":     c.Request.Method,
			}
			if id, ok := c.Get("analysisId"); ok {
				fields["analysis_id"] = id
			}
			telemetry.Error("panic", fields)
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Unexpected server error")
		}()
		c.Next()
	}
}
