package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jauniforms/pricing-backend/config"
	"github.com/jauniforms/pricing-backend/internal/app/controller"
	"github.com/jauniforms/pricing-backend/internal/app/repository"
	"github.com/jauniforms/pricing-backend/internal/app/service"
	"github.com/jauniforms/pricing-backend/internal/db"
	"github.com/jauniforms/pricing-backend/internal/middleware"
	"github.com/jauniforms/pricing-backend/internal/router"
	"github.com/jauniforms/pricing-backend/internal/scheduler"
	"github.com/jauniforms/pricing-backend/internal/storage"
	"github.com/jauniforms/pricing-backend/pkg/logger"
	"github.com/jauniforms/pricing-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Pricing Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to initialize Redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	styleRepo := repository.NewStyleRepository(db.GetDB())
	fabricRepo := repository.NewFabricRepository(db.GetDB())
	notionRepo := repository.NewNotionRepository(db.GetDB())
	laborRepo := repository.NewLaborRepository(db.GetDB())
	colorRepo := repository.NewColorRepository(db.GetDB())
	variableRepo := repository.NewVariableRepository(db.GetDB())
	settingsRepo := repository.NewSettingsRepository(db.GetDB())

	// Services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
		nil,
	)
	pricingService := service.NewPricingService(db.GetDB())
	styleService := service.NewStyleService(db.GetDB(), styleRepo, settingsRepo, pricingService, nil)
	catalogService := service.NewCatalogService(db.GetDB(), fabricRepo, notionRepo, laborRepo, colorRepo, variableRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	exportService := service.NewExportService(styleRepo, styleService, pricingService)

	// S3 storage for style images
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Controllers
	authController := controller.NewAuthController(authService)
	styleController := controller.NewStyleController(styleService)
	catalogController := controller.NewCatalogController(catalogService)
	settingsController := controller.NewSettingsController(settingsService)
	uploadController := controller.NewUploadController(s3Storage, styleService)
	exportController := controller.NewExportController(exportService)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, true)

	r := router.NewRouter(
		authController,
		styleController,
		catalogController,
		settingsController,
		uploadController,
		exportController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Nightly suggested-price refresh
	priceScheduler := scheduler.NewPriceRefreshScheduler(styleService, cfg.Pricing.RefreshSchedule)
	if err := priceScheduler.Start(); err != nil {
		logger.Fatal("Failed to start price refresh scheduler", err)
	}
	defer priceScheduler.Stop()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
