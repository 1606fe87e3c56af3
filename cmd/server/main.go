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

	reportapp "github.com/salesboard/backend/internal/application/report"
	"github.com/salesboard/backend/internal/infrastructure/cache"
	"github.com/salesboard/backend/internal/infrastructure/config"
	"github.com/salesboard/backend/internal/infrastructure/ledgerfile"
	"github.com/salesboard/backend/internal/infrastructure/logger"
	"github.com/salesboard/backend/internal/infrastructure/telemetry"
	"github.com/salesboard/backend/internal/interfaces/http/handler"
	"github.com/salesboard/backend/internal/interfaces/http/middleware"
	"github.com/salesboard/backend/internal/interfaces/http/router"
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

	log.Info("Starting Salesboard Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("ledger", cfg.Ledger.SourcePath),
	)

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Initialize the ledger loader and snapshot cache
	loader := ledgerfile.NewLoader(
		ledgerfile.WithSheetName(cfg.Ledger.SheetName),
		ledgerfile.WithDateHint(cfg.Ledger.DateHint),
		ledgerfile.WithLogger(log),
	)
	ledgerCache := cache.NewLedgerCache(loader, cache.WithLogger(log))

	// Warm the cache so a broken source path fails at startup, not on the
	// first request. The file can still be fixed and reloaded via refresh.
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := ledgerCache.Load(warmCtx, cfg.Ledger.SourcePath); err != nil {
		log.Warn("Ledger preload failed, continuing without cached snapshot", zap.Error(err))
	}
	warmCancel()

	// Initialize application services
	reportService := reportapp.NewReportService(ledgerCache, cfg.Ledger.SourcePath, log)

	// Initialize handlers
	reportHandler := handler.NewReportHandler(reportService)
	ledgerHandler := handler.NewLedgerHandler(reportService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Tracing - Create request spans
	// 4. Logger - Log requests
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint
	engine.GET("/health", healthHandler(reportService))

	// Register domain routes
	router.NewRouter(engine).
		Register(reportHandler).
		Register(ledgerHandler).
		Register(systemHandler).
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

// healthHandler reports whether the ledger snapshot is readable
func healthHandler(reportService *reportapp.ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		info, err := reportService.LedgerInfo(c.Request.Context())
		if err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"time":   time.Now().Format(time.RFC3339),
				"ledger": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"ledger": "ok",
			"rows":   info.Rows,
		})
	}
}
