package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/cashdesk-api/internal/app"
	"github.com/sangkips/cashdesk-api/internal/config"
	"github.com/sangkips/cashdesk-api/internal/infrastructure/database"
	"github.com/sangkips/cashdesk-api/internal/infrastructure/memory"
	"github.com/sangkips/cashdesk-api/internal/logger"
	"github.com/sangkips/cashdesk-api/internal/observability/metrics"
	"github.com/sangkips/cashdesk-api/internal/presentation/http/middleware"
	"github.com/sangkips/cashdesk-api/pkg/printer"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Setup(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	metrics.Init(nil)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := cfg.App.LoadLocation()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid timezone")
	}

	repos := openRepositories(cfg)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize printer, printing disabled")
		thermalPrinter, _ = printer.New(printer.Config{Type: "none"})
	}

	svc := app.NewServices(cfg, repos, app.Options{Location: loc, Printer: thermalPrinter})

	ctx := context.Background()
	if err := app.Seed(ctx, cfg, svc, false); err != nil {
		log.Fatal().Err(err).Msg("failed to create default admin")
	}

	limiter := middleware.NewOperatorRateLimiter(
		middleware.RateLimiterConfigFrom(cfg.RateLimit.Requests, cfg.RateLimit.Duration))
	defer limiter.Stop()

	router := app.Router(cfg, repos, svc, limiter)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().
			Str("app", cfg.App.Name).
			Str("env", cfg.App.Env).
			Str("port", port).
			Str("timezone", loc.String()).
			Str("storage", cfg.Database.Driver).
			Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func openRepositories(cfg *config.Config) *app.Repositories {
	if cfg.Database.IsMemory() {
		log.Warn().Msg("using in-memory storage; data is lost on restart")
		return app.MemoryRepositories(memory.NewStore())
	}

	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	return app.PostgresRepositories(db)
}
