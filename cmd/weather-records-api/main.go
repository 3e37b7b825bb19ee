package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "github.com/i474232898/weather-records-api/internal/api/http"
	"github.com/i474232898/weather-records-api/internal/auth"
	"github.com/i474232898/weather-records-api/internal/config"
	"github.com/i474232898/weather-records-api/internal/scheduler"
	"github.com/i474232898/weather-records-api/internal/store"
	"github.com/i474232898/weather-records-api/internal/weather"
)

func main() {
	// Load configuration (.env handled inside).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// Durable record store.
	recordStore, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer recordStore.Close()

	if err := recordStore.Migrate(ctx); err != nil {
		log.Fatalf("failed to migrate store: %v", err)
	}

	// Optional coordinate enrichment on create.
	var geocoder *weather.Geocoder
	if cfg.GeocoderAPIKey != "" {
		geocoder = weather.NewGeocoder(cfg.GeocoderAPIKey)
	}

	// Core service over the store.
	service := weather.NewService(recordStore, geocoder)

	// Periodic store maintenance.
	sched := scheduler.New(recordStore, cfg.MaintenanceInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-records-api",
		DisableStartupMessage: true,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint, outside the auth guard.
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-records-api",
		})
	})

	// Authenticated API routes.
	guard := auth.NewGuard(cfg.Users)
	app.Use(guard.Middleware())
	httpapi.RegisterRoutes(app, service, guard)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-sigCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
