package routes

import (
	"github.com/kpruthvi/portfolio/internal/api/handlers"
	"github.com/kpruthvi/portfolio/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers contains all the route handlers
type Handlers struct {
	Contact *handlers.ContactHandler
	Health  *handlers.HealthHandler
}

// Middleware contains the per-route middleware
type Middleware struct {
	Validation *middleware.ValidationMiddleware
	RateLimit  gin.HandlerFunc
	BodyLimit  gin.HandlerFunc
}
