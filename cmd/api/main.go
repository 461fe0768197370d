package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"archie-core-vtex-connector/internal/application"
	"archie-core-vtex-connector/internal/application/webhook_handlers"
	"archie-core-vtex-connector/internal/config"
	apiinfra "archie-core-vtex-connector/internal/infrastructure/api"
	"archie-core-vtex-connector/internal/infrastructure/encryption"
	"archie-core-vtex-connector/internal/infrastructure/metrics"
	"archie-core-vtex-connector/internal/infrastructure/redisstore"
	"archie-core-vtex-connector/internal/infrastructure/repository"
	shopifyinfra "archie-core-vtex-connector/internal/infrastructure/shopify"
	"archie-core-vtex-connector/internal/infrastructure/stream"
	vtexinfra "archie-core-vtex-connector/internal/infrastructure/vtex"
	"archie-core-vtex-connector/internal/ports"

	"github.com/rs/zerolog"
)

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	if err := shopifyinfra.ValidateQueries(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid storefront GraphQL documents")
	}
	metrics.RegisterDefault()

	startupCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Connect to MongoDB
	mongoClient, err := repository.Connect(startupCtx, cfg.MongoURI)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer mongoClient.Disconnect(context.Background())

	db := mongoClient.Database(cfg.MongoDatabase)
	if err := repository.EnsureIndexes(startupCtx, db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to create MongoDB indexes")
	}

	// Connect to Redis
	redisClient, err := redisstore.NewClient(startupCtx, cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	encryptionService, err := encryption.NewService(cfg.EncryptionKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}

	// Initialize repositories
	settingsRepo := repository.NewMongoSettingsRepository(db)
	sessionRepo := repository.NewMongoSessionRepository(db)
	activityRepo := repository.NewMongoActivityRepository(db)
	stateStore := redisstore.NewStateStore(redisClient)

	var activityPublisher ports.ActivityPublisher = stream.NoopActivityPublisher{}
	if cfg.KafkaEnabled() {
		activityPublisher = stream.NewKafkaActivityPublisher(cfg.KafkaBrokers, cfg.KafkaActivityTopic)
		logger.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaActivityTopic).Msg("Mirroring activity log to Kafka")
	}
	defer activityPublisher.Close()

	// Platform clients
	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	shopifyClient := shopifyinfra.NewClient(shopifyinfra.Config{
		APIKey:     cfg.ShopifyAPIKey,
		APISecret:  cfg.ShopifyAPISecret,
		APIVersion: cfg.ShopifyAPIVersion,
		Scopes:     cfg.Scopes,
		HTTPClient: httpClient,
		RateLimit:  cfg.ShopifyRateLimit,
	}, logger)
	vtexClient := vtexinfra.NewClient(vtexinfra.Config{
		HTTPClient: httpClient,
		RateLimit:  cfg.VTEXRateLimit,
	}, logger)

	// Initialize application services
	settingsService := application.NewSettingsService(settingsRepo, encryptionService, logger)
	activityService := application.NewActivityService(activityRepo, activityPublisher, logger)
	authService := application.NewAuthService(shopifyClient, settingsService, sessionRepo, stateStore, logger, cfg.AppURL, cfg.Scopes)
	fulfillmentService := application.NewFulfillmentService(settingsService, shopifyClient, logger)

	// Initialize webhook dispatcher and register handlers
	webhookDispatcher := application.NewWebhookDispatcher(activityService, logger)
	webhookDispatcher.RegisterHandler(webhook_handlers.NewOrderHandler(logger, settingsService, vtexClient))
	webhookDispatcher.RegisterHandler(webhook_handlers.NewProductHandler(logger, settingsService, shopifyClient, vtexClient))
	webhookDispatcher.RegisterHandler(webhook_handlers.NewAppUninstalledHandler(logger, authService))

	server := apiinfra.NewServer(fulfillmentService, authService, settingsService, activityService, webhookDispatcher, shopifyClient, logger)
	server.AccessLog = true

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Str("appUrl", cfg.AppURL).Msg("Starting API server")
		logger.Info().Msg("Swagger documentation available at http://localhost:" + cfg.Port + "/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("Shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
	server.Wait()
}
