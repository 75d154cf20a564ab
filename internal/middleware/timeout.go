package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Timeout returns a Gin middleware that attaches a deadline to the request
// context. It runs the handler chain synchronously (no goroutine spawning),
// which keeps gin.Context access single-threaded and avoids goroutine leaks.
//
// A handler that blocks without checking its context cannot be interrupted;
// that is acceptable here because every outbound call (geocoding, routing,
// weather, cache) propagates the context and unblocks when the deadline
// fires at the HTTP or DB level.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		// Replace the request context so all downstream code sees the deadline.
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		// If the deadline fired and the handler did not write a response,
		// send a 503.
		if ctx.Err() != nil && !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "request timed out",
			})
		}
	}
}
