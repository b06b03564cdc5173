package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/kpruthvi/portfolio/internal/api/dto/common"
	"github.com/kpruthvi/portfolio/internal/logging"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic anywhere below it into a generic 500.
// The panic value and stack go to the log only.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logging.GetGlobalLogger().Error("[PANIC] %s | %s | %s | %s | %v\n%s",
					c.Request.Method,
					c.Request.URL.Path,
					c.ClientIP(),
					c.GetString(ContextKeyRequestID),
					err,
					debug.Stack(),
				)

				if !c.Writer.Written() {
					c.AbortWithStatusJSON(http.StatusInternalServerError, common.NewErrorResponse(common.MsgUnexpected))
					return
				}
				c.Abort()
			}
		}()

		c.Next()
	}
}
