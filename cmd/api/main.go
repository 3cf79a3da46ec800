package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oreline/careers-api/config"
	"github.com/oreline/careers-api/internal/cache"
	"github.com/oreline/careers-api/internal/handlers"
	"github.com/oreline/careers-api/internal/middleware"
	"github.com/oreline/careers-api/internal/services"
	"github.com/oreline/careers-api/pkg/httpclient"
	"github.com/oreline/careers-api/pkg/logger"
	"github.com/oreline/careers-api/pkg/metrics"
	"github.com/oreline/careers-api/pkg/profiling"
	"github.com/oreline/careers-api/pkg/storage"
	"github.com/oreline/careers-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// registerAPIRoutes registers the careers API routes on the /api group
func registerAPIRoutes(
	group *gin.RouterGroup,
	cfg *config.Config,
	generalRateLimiter, applyRateLimiter, searchRateLimiter *middleware.RateLimiter,
	applicationHandler *handlers.ApplicationHandler,
	productsHandler *handlers.ProductsHandler,
	healthHandler *handlers.HealthHandler,
) {
	// Utility endpoints
	group.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	group.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	group.POST("/careers/apply", applyRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(cfg.MaxUploadBytes()), applicationHandler.Apply)
	group.GET("/products/search", searchRateLimiter.Middleware(), productsHandler.Search)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Oreline Careers API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(tracing.Config{
		ServiceName:       cfg.Observability.ServiceName,
		ServiceNamespace:  cfg.Observability.ServiceNamespace,
		ServiceVersion:    cfg.Observability.ServiceVersion,
		ServiceInstanceID: cfg.Observability.ServiceInstanceID,
		Environment:       cfg.Server.AppEnv,
		Endpoint:          cfg.Observability.ExporterEndpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	stopProfiler, err := profiling.InitProfiler(cfg.Profiling, cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer stopProfiler()

	// Initialize metrics with service name from config
	metrics.Init(cfg.Observability.ServiceName)

	// Start infrastructure metrics collection
	stopMetrics := make(chan struct{})
	defer close(stopMetrics)
	metrics.RecordInfrastructureMetrics(stopMetrics)

	// Uploaded CVs land on local disk first
	diskStore, err := storage.NewDiskStore(cfg.Uploads.Dir)
	if err != nil {
		logger.Fatal("Failed to initialize uploads directory", zap.Error(err), zap.String("dir", cfg.Uploads.Dir))
	}

	// Optional mirror into object storage
	var mirror storage.Store
	if cfg.ObjectStorage.Enabled() {
		objectStore, storeErr := storage.NewObjectStore(storage.ObjectConfig{
			AccessKeyID:     cfg.ObjectStorage.AccessKeyID,
			SecretAccessKey: cfg.ObjectStorage.SecretAccessKey,
			BucketName:      cfg.ObjectStorage.BucketName,
			Endpoint:        cfg.ObjectStorage.Endpoint,
			Region:          cfg.ObjectStorage.Region,
			Prefix:          cfg.ObjectStorage.Prefix,
			UsePathStyle:    cfg.ObjectStorage.UsePathStyle,
		})
		if storeErr != nil {
			logger.Fatal("Failed to initialize object storage client", zap.Error(storeErr))
		}
		mirror = objectStore
	} else {
		logger.Info("Object storage mirror disabled")
	}

	if !cfg.SearchEnabled() {
		logger.Warn("Product search disabled: PRODUCTS_API_HOST not set")
	}

	// Initialize HTTP client for the products API
	httpClient := httpclient.NewClientWithTimeout(time.Duration(cfg.Products.TimeoutSeconds) * time.Second)
	searchCache := cache.NewSearchCache(cfg.ProductsCacheTTL())

	// Initialize services
	applicationService := services.NewApplicationService(diskStore, mirror)
	productService := services.NewProductService(cfg.Products.APIHost, httpClient, searchCache)

	// Initialize handlers
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	productsHandler := handlers.NewProductsHandler(productService)
	healthHandler := handlers.NewHealthHandler(diskStore.CheckWritable)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName)) // OpenTelemetry tracing
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS configuration - only the storefront origins
	allowedOrigins := cfg.Server.AllowedOrigins
	// Allow localhost in development
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "traceparent", "tracestate"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	limiterCtx, stopLimiters := context.WithCancel(context.Background())
	defer stopLimiters()

	// Different limits for different endpoint types
	generalRateLimiter := middleware.NewRateLimiter(limiterCtx, 100, 200) // 100 req/sec, burst of 200
	applyRateLimiter := middleware.NewRateLimiter(limiterCtx, 0.0167, 3)  // 1 req/min, burst of 3
	searchRateLimiter := middleware.NewRateLimiter(limiterCtx, 10, 20)    // 10 req/sec, burst of 20 (typeahead)

	api := router.Group("/api")
	registerAPIRoutes(api, cfg, generalRateLimiter, applyRateLimiter, searchRateLimiter,
		applicationHandler, productsHandler, healthHandler)

	// Large CV uploads over slow links need a longer read timeout
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB max header size
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port), zap.String("uploads_dir", diskStore.Dir()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Let pending object storage uploads finish
	applicationService.Wait()

	logger.Info("Server exited")
}
