package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meetspot/backend/internal/adapters/cache"
	"github.com/meetspot/backend/internal/adapters/database"
	"github.com/meetspot/backend/internal/adapters/events"
	"github.com/meetspot/backend/internal/adapters/providers/placesearch"
	"github.com/meetspot/backend/internal/adapters/providers/transit"
	"github.com/meetspot/backend/internal/adapters/search"
	"github.com/meetspot/backend/internal/api/handlers"
	"github.com/meetspot/backend/internal/api/routes"
	"github.com/meetspot/backend/internal/application/services"
	"github.com/meetspot/backend/internal/domain/providers"
	"github.com/meetspot/backend/internal/domain/repositories"
	"github.com/meetspot/backend/internal/infrastructure/clients/postgres"
	"github.com/meetspot/backend/internal/infrastructure/clients/redis"
	"github.com/meetspot/backend/internal/infrastructure/clients/typesense"
	"github.com/meetspot/backend/internal/infrastructure/observability"
	"github.com/meetspot/backend/pkg/config"
)

func main() {

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var otelShutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		otelShutdown, err = observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Printf("Warning: failed to initialize OpenTelemetry: %v", err)
		}
	}

	// Initialize structured logging
	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Environment)
	logger := observability.GetLogger()

	// PostgreSQL is required
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
	}
	defer pgClient.Close()

	// Redis is optional: without it the transit cache is disabled and the
	// review bus falls back to in-process delivery.
	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, using in-process event bus without transit cache")
		eventBus = events.NewMemoryEventBus()
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient)
	}
	defer eventBus.Close()

	// Typesense is optional: without it candidate lookup runs on the
	// database box query alone.
	var venueIndex repositories.VenueIndex
	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		logger.Warn().Err(err).Msg("typesense unavailable, venue index disabled")
	} else {
		adapter := search.NewTypesenseAdapter(tsClient)
		if err := adapter.InitSchema(ctx); err != nil {
			logger.Warn().Err(err).Msg("failed to initialize venue index schema")
		} else {
			venueIndex = adapter
		}
	}

	// Repositories
	venueRepo := database.NewVenueAdapter(pgClient)
	prefRepo := database.NewPreferenceAdapter(pgClient)
	userRepo := database.NewUserAdapter(pgClient)

	// External providers
	var oracle providers.TransitProvider
	if cfg.Transit.Provider == "http" && cfg.Transit.APIKey != "" {
		oracle = transit.NewHTTPTransitProvider(cfg.Transit.APIKey, cfg.Transit.BaseURL, cacheProvider)
	} else {
		logger.Info().Msg("using static transit provider")
		oracle = transit.NewStaticTransitProvider()
	}

	var placeSearch providers.PlaceSearchProvider
	if cfg.PlaceSearch.APIKey != "" {
		placeSearch = placesearch.NewHTTPPlaceSearchProvider(cfg.PlaceSearch.APIKey, cfg.PlaceSearch.BaseURL, cfg.PlaceSearch.Region)
	} else {
		logger.Warn().Msg("place search disabled, external backfill unavailable")
	}

	// Application services
	tagService := services.NewTagExpansionService()
	midpointService := services.NewMidpointService(oracle, cfg.Engine.OracleWorkers)
	aggregationService := services.NewAggregationService(
		venueRepo,
		venueIndex,
		placeSearch,
		tagService,
		cfg.Engine.BackfillQueryCap,
		time.Duration(cfg.Engine.BackfillQueryTimeoutSeconds)*time.Second,
	)
	scoringService := services.NewScoringService(cfg.Engine.TopK)
	preferenceService := services.NewPreferenceService(prefRepo)
	recommendationService := services.NewRecommendationService(
		userRepo,
		prefRepo,
		placeSearch,
		midpointService,
		aggregationService,
		scoringService,
	)

	// Feed submitted reviews into the preference learner
	if err := preferenceService.StartReviewSubscriber(ctx, eventBus); err != nil {
		logger.Warn().Err(err).Msg("review subscriber failed to start, reviews apply synchronously")
		eventBus = nil
	}

	// Handlers and routes
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
	reviewHandler := handlers.NewReviewHandler(eventBus, preferenceService)
	venueHandler := handlers.NewVenueHandler(venueRepo)

	router := routes.NewRouter(recommendationHandler, reviewHandler, venueHandler, cfg.Server.AllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}

	if otelShutdown != nil {
		if err := otelShutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("failed to shut down telemetry")
		}
	}

	logger.Info().Msg("server stopped")
}
