// @title           Artisan Marketplace API
// @version         1.0.0
// @description     Marketplace connecting clients who design furniture with AI-generated concepts and artisans who bid to build it.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artisan-marketplace-backend/docs"
	"artisan-marketplace-backend/internal/config"
	"artisan-marketplace-backend/internal/database"
	"artisan-marketplace-backend/internal/handlers"
	"artisan-marketplace-backend/internal/imagegen"
	"artisan-marketplace-backend/internal/logging"
	"artisan-marketplace-backend/internal/metrics"
	"artisan-marketplace-backend/internal/middleware"
	"artisan-marketplace-backend/internal/models"
	"artisan-marketplace-backend/internal/ratelimit"
	"artisan-marketplace-backend/internal/services"
	"artisan-marketplace-backend/internal/supabase"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	logger := logging.New(cfg.LogLevel, cfg.IsProduction())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := models.RegisterValidators(); err != nil {
		logger.WithError(err).Fatal("failed to register validators")
	}

	// Point Swagger at the deployed host
	if baseURL, err := url.Parse(cfg.BaseURL); err == nil && baseURL.Host != "" {
		docs.SwaggerInfo.Host = baseURL.Host
		if baseURL.Scheme == "https" {
			docs.SwaggerInfo.Schemes = []string{"https", "http"}
		} else {
			docs.SwaggerInfo.Schemes = []string{"http", "https"}
		}
	}

	dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL, cfg.DatabaseMaxOpenConns)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}
	defer dbClient.Close()

	migrator, err := database.NewMigrator(cfg.DatabaseURL, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize migrator")
	}
	if err := migrator.Run(); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}
	migrator.Close()

	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize Supabase client")
	}
	storageClient := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey)

	generator := imagegen.NewClient(cfg.AIAPIBaseURL, cfg.AIAPIKey, cfg.AITextModel, cfg.AIImageModel, cfg.AITimeout)

	var generationLimiter ratelimit.Limiter = ratelimit.NewMemoryLimiter(cfg.GenerationRateLimit, cfg.GenerationRateWindow)
	if cfg.RedisURL != "" {
		redisClient, err := ratelimit.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to Redis")
		}
		defer redisClient.Close()
		generationLimiter = ratelimit.NewRedisLimiter(redisClient, "ratelimit:generations", cfg.GenerationRateLimit, cfg.GenerationRateWindow)
		logger.Info("using Redis generation rate limiter")
	}

	m := metrics.New()

	svc := handlers.Services{
		Projects:     services.NewProjectService(dbClient, dbClient, dbClient, m),
		Proposals:    services.NewProposalService(dbClient, dbClient, storageClient.Bucket(cfg.AttachmentBucket), m, logger),
		Artisans:     services.NewArtisanService(dbClient, dbClient, storageClient.Bucket(cfg.PortfolioBucket), logger),
		Reviews:      services.NewReviewService(dbClient, dbClient, dbClient),
		Images:       services.NewImageService(dbClient, generator, storageClient.Bucket(cfg.GeneratedBucket), m, logger),
		Dictionaries: services.NewDictionaryService(supabaseClient),
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		Logger:            logger,
		Metrics:           m,
		Auth:              middleware.NewAuthenticator(cfg, supabaseClient, supabaseClient),
		Throttle:          ratelimit.NewThrottle(cfg.APIRatePerSecond, cfg.APIRateBurst),
		GenerationLimiter: generationLimiter,
		Swagger:           !cfg.IsProduction(),
	}, svc)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithField("port", cfg.Port).Info("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("forced shutdown")
	}
}
