package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cypherlabdev/corner-alert-service/internal/cache"
	"github.com/cypherlabdev/corner-alert-service/internal/config"
	"github.com/cypherlabdev/corner-alert-service/internal/feed"
	httpHandler "github.com/cypherlabdev/corner-alert-service/internal/handler/http"
	"github.com/cypherlabdev/corner-alert-service/internal/messaging"
	"github.com/cypherlabdev/corner-alert-service/internal/notify"
	"github.com/cypherlabdev/corner-alert-service/internal/service"
	"github.com/cypherlabdev/corner-alert-service/internal/storage"
	"github.com/cypherlabdev/corner-alert-service/internal/tracker"
	"github.com/cypherlabdev/corner-alert-service/pkg/scoring"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Setup logger
	logger := setupLogger(cfg.Logging)
	logger.Info().Msg("starting corner-alert-service")

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create Redis cache for the dashboard snapshot
	redisCache := cache.NewRedisCache(
		cache.RedisCacheConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		},
		logger,
	)
	defer redisCache.Close()

	// Test Redis connection
	if err := redisCache.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	logger.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")

	// Create alert store
	store, err := storage.NewPostgresStore(cfg.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to Postgres")
	}
	defer store.Close()
	logger.Info().Msg("connected to Postgres")

	// Create notification channel
	var notifier service.Notifier
	if cfg.Telegram.Enabled {
		telegramNotifier, err := notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize Telegram bot")
		}
		notifier = telegramNotifier
		logger.Info().Msg("Telegram notifier initialized")
	} else {
		notifier = notify.NopNotifier{}
		logger.Warn().Msg("Telegram disabled, alerts will not be dispatched")
	}

	// Create scoring engine with the configured band overrides
	params := scoring.DefaultParams()
	params.CornerSweetSpotMin = cfg.Alerting.SweetSpotMin
	params.CornerSweetSpotMax = cfg.Alerting.SweetSpotMax
	engine := scoring.NewEngine(params, logger)
	logger.Info().Msg("scoring engine initialized")

	// Create match tracker
	matchTracker := tracker.New(cfg.Monitor.DiscoveryMinute, cfg.Monitor.EvictionGrace, logger)

	// Create feed client
	provider := feed.NewSportmonksClient(
		feed.SportmonksConfig{
			BaseURL: cfg.Feed.BaseURL,
			APIKey:  cfg.Feed.APIKey,
			Timeout: cfg.Feed.Timeout,
		},
		logger,
	)

	// Create monitor service
	monitor := service.NewMonitor(
		service.MonitorSettings{
			DiscoveryInterval:   cfg.Monitor.DiscoveryInterval,
			PollInterval:        cfg.Monitor.PollInterval,
			ResultCheckSchedule: cfg.Monitor.ResultCheckSchedule,
			Gate: tracker.GateConfig{
				ScoreThreshold: cfg.Alerting.ScoreThreshold,
				MinMinute:      cfg.Alerting.MinMinute,
			},
		},
		provider,
		engine,
		matchTracker,
		notifier,
		store,
		logger,
	)
	logger.Info().Msg("monitor service initialized")

	// Start the inbound pipeline: either poll the feed API or consume pushed
	// telemetry from Kafka. Both modes share the monitor's decision pipeline.
	switch cfg.Feed.Source {
	case "kafka":
		consumer := messaging.NewKafkaConsumer(
			messaging.KafkaConsumerConfig{
				Brokers: cfg.Kafka.Brokers,
				Topic:   cfg.Kafka.Topic,
				GroupID: cfg.Kafka.GroupID,
			},
			monitor,
			logger,
		)
		defer consumer.Close()

		go func() {
			if err := consumer.Start(ctx); err != nil {
				logger.Error().Err(err).Msg("Kafka consumer failed")
			}
		}()

		// The consumer only feeds the decision pipeline; result checking,
		// eviction and the persistence retry drain still need their own loop.
		go func() {
			if err := monitor.RunMaintenance(ctx); err != nil {
				logger.Error().Err(err).Msg("monitor maintenance failed")
			}
		}()
	default:
		go func() {
			if err := monitor.Run(ctx); err != nil {
				logger.Error().Err(err).Msg("monitor failed")
			}
		}()
	}

	// Dashboard projection layer
	dashboardService := service.NewDashboardService(matchTracker, redisCache, cfg.Alerting.ScoreThreshold, logger)

	// Initialize HTTP handler
	dashboardHandler := httpHandler.NewDashboardHandler(dashboardService, store, logger)
	logger.Info().Msg("HTTP handler initialized")

	// Setup HTTP server routes
	mux := http.NewServeMux()

	// Health and monitoring endpoints
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		readyHandler(w, r, redisCache, store)
	})
	mux.Handle("/metrics", promhttp.Handler())

	// Register API routes
	dashboardHandler.RegisterRoutes(mux)
	logger.Info().Msg("API routes registered")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start HTTP server in goroutine
	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("shutting down gracefully...")

	// Cancel context to stop the monitor loop and consumer
	cancel()

	// Shutdown HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	logger.Info().Msg("shutdown complete")
}

// setupLogger configures the logger based on config
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set format
	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return log.Logger.With().Str("service", "corner-alert").Logger()
}

// healthHandler returns 200 if service is running
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// readyHandler returns 200 if service is ready to accept traffic
func readyHandler(w http.ResponseWriter, r *http.Request, cache *cache.RedisCache, store *storage.PostgresStore) {
	// Check Redis connection
	if err := cache.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Redis unavailable"))
		return
	}

	// Check Postgres connection
	if err := store.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Postgres unavailable"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
