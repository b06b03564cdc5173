package routes

import (
	"github.com/kpruthvi/portfolio/internal/api/handlers"
	apimw "github.com/kpruthvi/portfolio/internal/api/middleware"
	"github.com/kpruthvi/portfolio/internal/logging"
	"github.com/kpruthvi/portfolio/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Setup configures all routes
func Setup(router *gin.Engine, h *Handlers, m *Middleware) {
	// Unsupported methods get a JSON 405 instead of gin's plain-text 404
	router.HandleMethodNotAllowed = true
	router.NoMethod(handlers.MethodNotAllowed)
	router.NoRoute(handlers.NotFound)

	SetupHealthRoutes(router, h.Health)
	SetupContactRoutes(router, h.Contact, m)

	logging.GetGlobalLogger().Debug("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes,
// including the 404 and 405 fallbacks. CORS runs first so every response,
// even a recovered panic, carries the allow-origin header.
func SetupGlobalMiddleware(router *gin.Engine, logger *logging.Logger, serviceName string) {
	router.Use(apimw.CORS())
	router.Use(middleware.RequestID())
	router.Use(apimw.RequestLogger(logger))
	router.Use(middleware.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(apimw.SecurityHeaders())
}
