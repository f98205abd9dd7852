package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes payload with the given status. Responses carry the request ID
// so dashboard errors can be matched to server logs.
func JSON(c *gin.Context, status int, payload any) {
	if id := c.GetString("requestId"); id != "" {
		c.Header("X-Request-Id", id)
	}
	c.JSON(status, payload)
}

// OK writes a 200 JSON response.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}
