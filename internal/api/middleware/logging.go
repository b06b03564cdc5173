package middleware

import (
	"time"

	"github.com/kpruthvi/portfolio/internal/logging"
	mw "github.com/kpruthvi/portfolio/internal/middleware"
	"github.com/kpruthvi/portfolio/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one access line per request. The logger decides
// whether access logging is enabled (LOG_REQUESTS).
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.LogHTTPRequest(
			c.Request.Method,
			path,
			utils.GetRealIP(c),
			c.GetString(mw.ContextKeyRequestID),
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start).String(),
		)
	}
}
