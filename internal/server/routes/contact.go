package routes

import (
	"github.com/kpruthvi/portfolio/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes configures the submission path. The relay answers at
// the root like an edge function; /api/v1/contact/submit is an alias.
func SetupContactRoutes(router *gin.Engine, contact *handlers.ContactHandler, m *Middleware) {
	chain := []gin.HandlerFunc{
		m.BodyLimit,
		m.RateLimit,
		m.Validation.ValidateSubmission(),
		contact.Submit,
	}

	router.POST("/", chain...)
	router.Group("/api/v1/contact").POST("/submit", chain...)
}
