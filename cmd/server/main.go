package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kpruthvi/portfolio/internal/config"
	"github.com/kpruthvi/portfolio/internal/logging"
	"github.com/kpruthvi/portfolio/internal/server"
	"github.com/kpruthvi/portfolio/internal/telemetry"
	"github.com/kpruthvi/portfolio/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger configuration
	logConfig := &logging.LogConfig{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
	}

	if err := logging.InitLogger(logConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := logging.GetGlobalLogger()
	defer logger.Close()
	logger.SetLogRequests(cfg.LogRequests)

	logger.Info("Starting contact relay %s in %s mode", version.Info(), cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.SetupTracing(ctx, cfg.OTLPEndpoint, version.Version, logger)
	if err != nil {
		logger.Error("Failed to initialize tracing: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("Failed to flush traces: %v", err)
		}
	}()

	srv := server.NewServer(cfg, logger)
	if err := srv.Start(ctx); err != nil {
		logger.Error("Server stopped: %v", err)
		os.Exit(1)
	}

	logger.Info("Server stopped")
}
