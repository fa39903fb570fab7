package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aidmatch/trust-engine/pkg/common"
	"github.com/gin-gonic/gin"
)

// Timeout puts a deadline of d on the request context. Handlers see it through
// c.Request.Context(); a request that passes the deadline without writing a
// response gets a 503.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			common.ErrorResponse(c, http.StatusServiceUnavailable, common.RequestTimeoutMessage)
		}
	}
}
