package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"shopify-product-service/internal/clients/netsuite"
	"shopify-product-service/internal/clients/shopify"
	"shopify-product-service/internal/config"
	"shopify-product-service/internal/database"
	"shopify-product-service/internal/events"
	"shopify-product-service/internal/handlers"
	"shopify-product-service/internal/middleware"
	"shopify-product-service/internal/repository"
	"shopify-product-service/internal/secrets"
	"shopify-product-service/internal/services"

	gosharedmw "github.com/Tesseract-Nexus/go-shared/middleware"
	"github.com/Tesseract-Nexus/go-shared/tracing"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	ctx := context.Background()

	// Tracing
	var tracerProvider *tracing.TracerProvider
	var err error
	if cfg.IsProduction() {
		tracerProvider, err = tracing.InitTracer(tracing.ProductionConfig("shopify-product-service"))
	} else {
		tracerProvider, err = tracing.InitTracer(tracing.DefaultConfig("shopify-product-service"))
	}
	if err != nil {
		logger.WithError(err).Warn("Failed to initialize tracing, continuing without tracing")
	}

	metrics := gosharedmw.InitGlobalMetrics("tesseract", "shopify_product_service")

	// GCP Secret Manager (optional)
	var secretReader secrets.SecretReader
	var secretManager *secrets.GCPSecretManager
	if cfg.GCPProjectID != "" {
		secretManager, err = secrets.NewGCPSecretManager(ctx, cfg.GCPProjectID)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize GCP Secret Manager")
		} else {
			secretReader = secretManager
			logger.Info("GCP Secret Manager initialized")
		}
	}

	// Clients
	itemRepo := netsuite.NewClient(netsuite.Config{
		BaseURL:          cfg.ResolvedNetSuiteBaseURL(netsuite.BaseURLForAccount),
		AccessToken:      cfg.NetSuiteAccessToken,
		RateLimit:        cfg.NetSuiteRateLimit,
		Timeout:          cfg.NetSuiteTimeout,
		ChildConcurrency: cfg.NetSuiteChildConcurrency,
	}, logger)
	productClient := shopify.NewProductClient(
		cfg.ShopifyProductEndpoint,
		secrets.NewProductSecretResolver(secretReader, cfg.ShopifyProductSecretName, cfg.ShopifyProductSecret),
		cfg.ShopifySubmitTimeout,
		logger,
	)

	var opts []services.ProductServiceOption
	readiness := map[string]handlers.Pinger{}

	// Submission audit trail (optional)
	var submissionHandler *handlers.SubmissionHandler
	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL, cfg.Environment)
		if err != nil {
			logger.WithError(err).Warn("Failed to connect to database, submission audit disabled")
		} else {
			if err := database.Migrate(db); err != nil {
				logger.WithError(err).Warn("Auto-migration failed")
			}
			auditService := services.NewAuditService(repository.NewSubmissionRepository(db))
			opts = append(opts, services.WithSubmissionRecorder(auditService))
			submissionHandler = handlers.NewSubmissionHandler(auditService)
			if sqlDB, err := db.DB(); err == nil {
				readiness["database"] = sqlDB
			}
			logger.Info("Submission audit enabled")
		}
	}

	// Events (optional)
	var publisher *events.Publisher
	if cfg.NATSURL != "" {
		publisher, err = events.NewPublisher(ctx, cfg.NATSURL, logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize NATS publisher, continuing without events")
			publisher = nil
		} else {
			opts = append(opts, services.WithEventPublisher(publisher))
		}
	}

	productService := services.NewProductService(services.NewFieldMapper(nil), itemRepo, productClient, logger, opts...)

	router := setupRouter(cfg, logger, metrics,
		handlers.NewHealthHandler(readiness),
		handlers.NewActionHandler(productService),
		submissionHandler,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{"port": cfg.Port, "env": cfg.Environment}).Info("Shopify Product Service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down Shopify Product Service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
	if publisher != nil {
		publisher.Close()
	}
	if secretManager != nil {
		_ = secretManager.Close()
	}
	if tracerProvider != nil {
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("Error shutting down tracer provider")
		}
	}
	logger.Info("Shopify product service stopped")
}

// setupRouter configures the Gin router with middleware and routes
func setupRouter(
	cfg *config.Config,
	logger *logrus.Logger,
	metrics *gosharedmw.Metrics,
	healthHandler *handlers.HealthHandler,
	actionHandler *handlers.ActionHandler,
	submissionHandler *handlers.SubmissionHandler,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(gosharedmw.SecurityHeaders())
	router.Use(middleware.SetupCORS(cfg.CORSAllowedOrigins))
	router.Use(metrics.Middleware())
	router.Use(tracing.GinMiddleware("shopify-product-service"))

	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/metrics", gosharedmw.Handler())

	api := router.Group("/api/v1")
	{
		api.POST("/actions", actionHandler.Handle)
		if submissionHandler != nil {
			api.GET("/submissions", submissionHandler.List)
		}
	}

	return router
}
