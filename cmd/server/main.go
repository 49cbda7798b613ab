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
	"go.uber.org/zap"

	"github.com/nimbus-rentals/service-rental/internal/application"
	"github.com/nimbus-rentals/service-rental/internal/config"
	"github.com/nimbus-rentals/service-rental/internal/events"
	"github.com/nimbus-rentals/service-rental/internal/handler"
	"github.com/nimbus-rentals/service-rental/internal/health"
	"github.com/nimbus-rentals/service-rental/internal/logger"
	"github.com/nimbus-rentals/service-rental/internal/middleware"
	"github.com/nimbus-rentals/service-rental/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-rental")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-rental",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := repository.Connect(cfg.DB.DSN(), log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run schema migration in development
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(&repository.VehicleModel{}, &repository.BookingModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	}

	// Initialize Kafka producer
	producer := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
	defer func() { _ = producer.Close() }()

	// Initialize repositories
	vehicleRepo := repository.NewGormVehicleRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)

	// Initialize application services
	vehicleService := application.NewVehicleService(vehicleRepo, producer, log, cfg.MaxPageSize)
	bookingService := application.NewBookingService(bookingRepo, vehicleRepo, producer, log, cfg.MaxPageSize)

	// Initialize HTTP handlers
	bookingHandler := handler.NewBookingHandler(bookingService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService, bookingService)
	identityHandler := handler.NewIdentityHandler()

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AppEnv))
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db)
	healthHandler.RegisterRoutes(router)

	// Register routes behind API-key auth
	authMW := middleware.APIKeyAuthMiddleware(cfg.APIKeys)
	vehicleHandler.RegisterRoutes(&router.RouterGroup, authMW)
	bookingHandler.RegisterRoutes(&router.RouterGroup, authMW)
	identityHandler.RegisterRoutes(&router.RouterGroup, authMW)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-rental...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-rental stopped")
}
