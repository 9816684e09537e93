package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apptracking "github.com/sooqly/backend/internal/application/tracking"
	"github.com/sooqly/backend/internal/domain/tracking"
	"github.com/sooqly/backend/internal/infrastructure/cache"
	"github.com/sooqly/backend/internal/infrastructure/carrier"
	"github.com/sooqly/backend/internal/infrastructure/config"
	"github.com/sooqly/backend/internal/infrastructure/logger"
	"github.com/sooqly/backend/internal/infrastructure/persistence"
	"github.com/sooqly/backend/internal/infrastructure/telemetry"
	"github.com/sooqly/backend/internal/interfaces/http/handler"
	"github.com/sooqly/backend/internal/interfaces/http/middleware"
	"github.com/sooqly/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Sooqly tracking backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories and per-schema order sources
	hubRepo := persistence.NewGormOrderHubRepository(db.DB)
	storefrontSource := persistence.NewStorefrontOrderSource(db.DB)
	vendorSource := persistence.NewVendorOrderSource(db.DB)

	// Single-flight guard shared by fetches and the error throttle fallback
	arena := tracking.NewGuardArena()

	throttleFactory := cache.NewErrorThrottleFactory(
		cfg.Redis,
		cfg.Tracking.ErrorThrottleTTL,
		cache.WithLogger(log),
	)
	throttle, err := throttleFactory.CreateThrottle(arena)
	if err != nil {
		log.Fatal("Failed to create error throttle", zap.Error(err))
	}

	// Carrier API client
	carrierCfg := &carrier.Config{
		APIBaseURL:     cfg.Carrier.APIBaseURL,
		APIKey:         cfg.Carrier.APIKey,
		MerchantCode:   cfg.Carrier.MerchantCode,
		TrackingPath:   cfg.Carrier.TrackingPath,
		TimeoutSeconds: cfg.Carrier.TimeoutSeconds,
	}
	carrierClient, err := carrier.NewClient(carrierCfg)
	if err != nil {
		log.Fatal("Failed to create carrier client", zap.Error(err))
	}

	// Metrics on the global meter provider; exporter wiring is deploy-specific
	metrics, err := telemetry.NewTrackingMetricsFromGlobal()
	if err != nil {
		log.Warn("Failed to create tracking metrics, continuing without", zap.Error(err))
		metrics = nil
	}

	// Initialize application services
	resolver := apptracking.NewResolverService(hubRepo, log, storefrontSource, vendorSource)
	trackingService := apptracking.NewService(carrierClient, arena, throttle, metrics, log)

	// Initialize HTTP handlers
	trackingHandler := handler.NewTrackingHandler(resolver, trackingService, cfg.Tracking.RecheckDelay, log)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins

	engine := router.NewEngine(log, corsConfig, healthHandler(db))

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Setup API routes
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(trackingHandler).
		Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
