package http_access_middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/swipematch/core/internal/delivery/http/common"
)

// ReadOnlyGuard rejects writes when the instance runs in "RO" mode.
// Reads keep working so replicas can still serve queue and result lookups.
func ReadOnlyGuard(mode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if mode != "RO" {
			c.Next()
			return
		}

		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		c.JSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: "write operations not allowed on read-only instance",
		})
		c.Abort()
	}
}
