package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/SscSPs/ledger_engine/internal/actions"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/handlers"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/platform/storage"
	"github.com/gin-gonic/gin"
)

// @title Ledger Engine API
// @version 1.0
// @description Double-entry ledger: chart of accounts, journal entries, period close and reports.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var logger *slog.Logger
	if cfg.IsProduction {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, opts))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	slog.SetDefault(logger)

	if err := serve(cfg, logger); err != nil {
		os.Exit(1)
	}
}

// serve opens storage and runs the HTTP server until it fails. Storage is
// closed before serve returns, so callers may exit immediately afterwards.
func serve(cfg *config.Config, logger *slog.Logger) error {
	repos, closeDB, err := storage.Open(context.Background(), cfg)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()), slog.String("driver", cfg.DatabaseDriver))
		return err
	}
	defer closeDB()

	svc := services.NewServiceContainer(repos)
	dispatcher := actions.NewDispatcher(svc, cfg.Settings())

	limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to configure rate limiter", slog.String("error", err.Error()))
		return err
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.RateLimit(limiter),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		return err
	}

	handlers.RegisterRoutes(r, cfg, dispatcher)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("driver", cfg.DatabaseDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		return err
	}
	return nil
}
