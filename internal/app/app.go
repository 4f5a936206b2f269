package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"webstrate-analytics/internal/aggregators"
	"webstrate-analytics/internal/events"
	internalhttp "webstrate-analytics/internal/http"
	"webstrate-analytics/internal/queries"
	"webstrate-analytics/internal/relay"
	"webstrate-analytics/internal/shared/configs"
	"webstrate-analytics/internal/shared/loggers"
	"webstrate-analytics/internal/shared/mongostorages"
	"webstrate-analytics/internal/stores"
	"webstrate-analytics/internal/streams"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	storage               *mongostorages.MongoStorage
	platformEventConsumer streams.PlatformEventConsumer
	aggregationService    aggregators.AggregationService
	flushScheduler        aggregators.FlushScheduler
	relayClient           relay.Client

	backgroundCtx    context.Context
	backgroundCancel context.CancelFunc
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "webstrate-analytics").
		Logger()

	// Connect the persistent store
	storage, err := mongostorages.Dial(mongostorages.Config{
		URI:               config.Mongo.URI,
		Database:          config.Mongo.Database,
		ConnectionTimeout: time.Duration(config.Mongo.ConnectionTimeout) * time.Second,
		PingTimeout:       time.Duration(config.Mongo.PingTimeout) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	activityStore := stores.NewActivityStore(storage)
	clientEventStore := stores.NewClientEventStore(storage)

	// Initialize aggregation
	accumulator := aggregators.NewAccumulator()
	aggregationService := aggregators.NewAggregationService(accumulator, activityStore, clientEventStore)
	schedulerLogger := appLogger.With().Str(loggers.FieldComponent, "flush_scheduler").Logger()
	flushScheduler := aggregators.NewFlushScheduler(aggregationService, config.FlushPeriod(), schedulerLogger)

	// Initialize event stream
	platformEventQueue := streams.NewPartitionedQueue[events.PlatformEvent]()
	consumerLogger := appLogger.With().Str(loggers.FieldComponent, "consumer").Logger()
	platformEventConsumer := streams.NewPlatformEventConsumer(platformEventQueue, aggregationService, consumerLogger)
	platformEventProducer := streams.NewPlatformEventProducer(platformEventQueue)

	// Initialize the upstream relay when configured
	var relayClient relay.Client
	if config.Relay.Enabled {
		relayLogger := appLogger.With().Str(loggers.FieldComponent, "relay").Logger()
		relayClient = relay.NewClient(relay.Config{
			URL:               config.Relay.URL,
			APIKey:            config.Relay.APIKey,
			KeepaliveInterval: time.Duration(config.Relay.KeepaliveInterval) * time.Second,
		}, platformEventProducer, relayLogger)
	}

	// Initialize query engine
	laterFilter := queries.CompatLaterFilter
	if config.Queries.StrictLaterFilter {
		laterFilter = queries.StrictLaterFilter
	}
	queryService := queries.NewQueryService(activityStore, clientEventStore, laterFilter)

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(queryService, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:                config,
		appLogger:             appLogger,
		server:                server,
		storage:               storage,
		platformEventConsumer: platformEventConsumer,
		aggregationService:    aggregationService,
		flushScheduler:        flushScheduler,
		relayClient:           relayClient,
	}, nil
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting webstrate-analytics service on port %d (log_level=%s, flush_period=%s, relay_enabled=%t)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.Aggregation.FlushPeriod,
			app.config.Relay.Enabled)

	// start background workers
	app.backgroundCtx, app.backgroundCancel = context.WithCancel(context.Background())
	app.platformEventConsumer.Start(app.backgroundCtx)
	app.flushScheduler.Start(app.backgroundCtx)
	if app.relayClient != nil {
		app.relayClient.Start(app.backgroundCtx)
	}

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application. The relay stops first so no
// new events arrive, then the consumer drains, then a final flush persists the
// interval in progress.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Stop ingestion
	if app.relayClient != nil {
		app.relayClient.Stop()
		app.appLogger.Info().Msg("Relay stopped")
	}

	// 3) Cancel and wait for background workers
	if app.backgroundCancel != nil {
		app.backgroundCancel()
	}
	app.flushScheduler.Stop()
	app.platformEventConsumer.Stop()
	app.appLogger.Info().Msg("Background workers stopped")

	// 4) Flush the interval in progress
	if svcErr := app.aggregationService.Flush(ctx); svcErr != nil {
		app.appLogger.Error().
			Err(svcErr.Cause).
			Str(loggers.FieldErrorCode, svcErr.Code).
			Msg("final flush failed")
	}

	// 5) Disconnect the store
	if err := app.storage.Close(ctx); err != nil {
		return fmt.Errorf("mongo disconnect failed: %w", err)
	}
	app.appLogger.Info().Msg("Store disconnected")

	return nil
}
