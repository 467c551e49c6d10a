package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/northwoods-housing/compass/api/internal/config"
	"github.com/northwoods-housing/compass/api/internal/database"
	"github.com/northwoods-housing/compass/api/internal/handlers"
	"github.com/northwoods-housing/compass/api/internal/logger"
	"github.com/northwoods-housing/compass/api/internal/middleware"
	"github.com/northwoods-housing/compass/api/internal/repository"
	"github.com/northwoods-housing/compass/api/internal/scoring"
	"github.com/northwoods-housing/compass/api/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting Compass API", map[string]interface{}{
		"version":     "0.1.0",
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
	})

	// Create database connection pool
	ctx := context.Background()
	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
	}
	defer db.Close()

	log.Info("Database connection established", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS -> Requester
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))
	router.Use(middleware.Requester())

	// Register health check routes
	healthHandler := handlers.NewHealthHandler(db, cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)

	// Classification thresholds and page-size policy from configuration
	policy := scoring.Policy{
		HorizonDays:          cfg.Policy.StalenessHorizonDays,
		ConcernWindowDays:    cfg.Policy.ConcernWindowDays,
		TrustedMinEvents:     cfg.Policy.TrustedMinEvents,
		TrustedMinConfidence: cfg.Policy.TrustedMinConfidence,
		ConcernMinReports:    cfg.Policy.ConcernMinReports,
	}
	paging := services.Paging{
		DefaultLimit: cfg.Policy.DefaultPageSize,
		MaxLimit:     cfg.Policy.MaxPageSize,
	}

	// Initialize repository and service layers
	resourceRepo := repository.NewResourceRepository(db)
	verificationRepo := repository.NewVerificationRepository(db)
	reportRepo := repository.NewReportRepository(db)

	discoveryService := services.NewDiscoveryService(resourceRepo, verificationRepo, reportRepo, policy, paging)
	resourceService := services.NewResourceService(resourceRepo, verificationRepo, reportRepo, policy, paging)
	reportService := services.NewReportService(reportRepo, resourceRepo, paging)

	// Initialize handlers
	resourceHandler := handlers.NewResourceHandler(discoveryService, resourceService)
	reportHandler := handlers.NewReportHandler(reportService)
	lookupHandler := handlers.NewLookupHandler(resourceService)

	// Register API v1 routes
	v1 := router.Group("/api/v1")
	{
		resources := v1.Group("/resources")
		{
			resources.GET("", resourceHandler.Discover)
			resources.POST("", resourceHandler.Create)
			resources.GET("/stale", resourceHandler.ListStale)
			resources.GET("/:id", resourceHandler.Get)
			resources.PATCH("/:id", resourceHandler.Update)
			resources.DELETE("/:id", resourceHandler.Delete)
			resources.POST("/:id/verifications", resourceHandler.RecordVerification)
			resources.GET("/:id/verifications", resourceHandler.ListVerifications)
			resources.POST("/:id/reports", reportHandler.Submit)
		}

		reports := v1.Group("/reports")
		{
			reports.GET("/pending", reportHandler.Pending)
			reports.POST("/:id/review", reportHandler.Review)
		}

		lookups := v1.Group("/lookups")
		{
			lookups.GET("/counties", lookupHandler.Counties)
			lookups.GET("/categories", lookupHandler.Categories)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}
