package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kpruthvi/portfolio/internal/api/handlers"
	"github.com/kpruthvi/portfolio/internal/api/middleware"
	"github.com/kpruthvi/portfolio/internal/config"
	"github.com/kpruthvi/portfolio/internal/logging"
	"github.com/kpruthvi/portfolio/internal/server/routes"
	"github.com/kpruthvi/portfolio/internal/service"
	"github.com/kpruthvi/portfolio/internal/telemetry"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds the drain of in-flight requests on stop
const shutdownTimeout = 15 * time.Second

// Server represents the relay HTTP server
type Server struct {
	router *gin.Engine
	cfg    *config.Config
	logger *logging.Logger
}

// NewServer wires the relay pipeline from configuration
func NewServer(cfg *config.Config, logger *logging.Logger) *Server {
	client := telemetry.NewHTTPClient(cfg.OutboundTimeout)

	verifier := service.NewTurnstileService(cfg.TurnstileSecret, cfg.TurnstileVerifyURL, client)
	mailer := service.NewMailService(service.MailConfig{
		SendURL: cfg.MailSendURL,
		APIKey:  cfg.MailAPIKey,
		To:      service.Address{Email: cfg.ToEmail, Name: cfg.ToName},
		From:    service.Address{Email: cfg.FromEmail, Name: cfg.FromName},
	}, client)

	return NewServerWithService(cfg, logger, service.NewContactService(verifier, mailer, logger))
}

// NewServerWithService builds the router around an existing submitter
func NewServerWithService(cfg *config.Config, logger *logging.Logger, submitter handlers.Submitter) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	router := gin.New()
	router.TrustedPlatform = cfg.ClientIPHeader()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Error("Invalid trusted proxies, forwarding headers will be ignored: %v", err)
	}
	routes.SetupGlobalMiddleware(router, logger, telemetry.ServiceName)

	h := &routes.Handlers{
		Contact: handlers.NewContactHandler(submitter),
		Health:  handlers.NewHealthHandler(),
	}
	m := &routes.Middleware{
		Validation: middleware.NewValidationMiddleware(logger),
		RateLimit: middleware.RateLimitMiddleware(middleware.RateLimitConfig{
			RPS:   cfg.RateLimitRPS,
			Burst: cfg.RateLimitBurst,
		}),
		BodyLimit: middleware.LimitRequestBody(cfg.MaxBodyBytes),
	}
	routes.Setup(router, h, m)

	return &Server{
		router: router,
		cfg:    cfg,
		logger: logger,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then drains in-flight requests
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Two sequential outbound calls plus headroom
		WriteTimeout: 2*s.cfg.OutboundTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Relay listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down relay")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
