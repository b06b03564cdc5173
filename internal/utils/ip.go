package utils

import (
	"github.com/gin-gonic/gin"
)

// GetRealIP returns the client address as resolved by the engine.
// Forwarding headers count only when the peer is a trusted proxy, or when the
// engine's TrustedPlatform names the header; otherwise it is the peer address.
func GetRealIP(c *gin.Context) string {
	return c.ClientIP()
}
