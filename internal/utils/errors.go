package utils

import (
	"github.com/kpruthvi/portfolio/internal/logging"

	"github.com/gin-gonic/gin"
)

// HandleAPIError logs the cause and responds with a fixed client-safe message.
// err is never serialized into the response.
func HandleAPIError(c *gin.Context, err error, status int, message string) {
	logger := logging.GetGlobalLogger()
	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		GetRealIP(c),
		status,
		message,
		err,
	)

	HandleErrorMessage(c, status, message)
}
