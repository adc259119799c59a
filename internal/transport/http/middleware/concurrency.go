package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	resp "github.com/gab-correia/w1-app/internal/transport/http/response"
)

// ConcurrencyLimit caps in-flight requests so a burst cannot exhaust the
// DB pool; waiting requests give up when their context ends.
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if err := sem.Acquire(c.Request.Context(), 1); err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, resp.Error(resp.CodeInternal, "server busy"))
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}
