package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"rideshare/internal/utils"
)

// Logger writes one request line per call through utils.LogEvent, so HTTP
// traffic lands in the same key=value shape as the module event logs.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		utils.LogEvent(GetRequestID(c), "http", "request",
			fmt.Sprintf("method=%s path=%s status=%d latency_ms=%.3f ip=%s",
				c.Request.Method,
				c.Request.URL.Path,
				c.Writer.Status(),
				float64(latency.Microseconds())/1000.0,
				c.ClientIP(),
			))
	}
}
