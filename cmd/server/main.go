package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/rk/lifeadmin/internal/adapter/http"
	"github.com/rk/lifeadmin/internal/adapter/http/handler"
	"github.com/rk/lifeadmin/internal/adapter/http/middleware"
	postgresRepo "github.com/rk/lifeadmin/internal/adapter/repository/postgres"
	redisRepo "github.com/rk/lifeadmin/internal/adapter/repository/redis"
	"github.com/rk/lifeadmin/internal/infrastructure/auth"
	"github.com/rk/lifeadmin/internal/infrastructure/config"
	"github.com/rk/lifeadmin/internal/infrastructure/logger"
	"github.com/rk/lifeadmin/internal/infrastructure/postgres"
	"github.com/rk/lifeadmin/internal/infrastructure/rabbitmq"
	"github.com/rk/lifeadmin/internal/infrastructure/redis"
	"github.com/rk/lifeadmin/internal/notifier"
	"github.com/rk/lifeadmin/internal/syncer"
	"github.com/rk/lifeadmin/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL
	connectCtx, connectCancel := context.WithTimeout(ctx, cfg.DatabaseTimeout)
	pool, err := postgres.NewPool(connectCtx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	connectCancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations", log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Connect to RabbitMQ
	publisher, err := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.ReminderExchange, cfg.ReminderQueue, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to rabbitmq")
	}
	defer publisher.Close()
	log.Info().Msg("connected to rabbitmq")

	// Initialize repositories
	assetRepo := postgresRepo.NewAssetRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	reminderRepo := postgresRepo.NewReminderRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)

	// Write-behind syncer
	sync := syncer.New(assetRepo, txnRepo, retrier, log, syncer.WithBufferSize(cfg.SyncBufferSize))
	go sync.Start(ctx)

	// Initialize use cases
	ledgerUC := usecase.NewLedgerUseCase(assetRepo, txnRepo, idGen, sync, cache, log)
	reminderUC := usecase.NewReminderUseCase(reminderRepo, idGen)
	userUC := usecase.NewUserUseCase(userRepo, idGen)

	// Reminder notifier
	dueNotifier := notifier.New(reminderUC, publisher, log, notifier.WithInterval(cfg.NotifierInterval))
	go dueNotifier.Start(ctx)

	// Auth
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userUC, jwtManager)
	assetHandler := handler.NewAssetHandler(ledgerUC)
	transactionHandler := handler.NewTransactionHandler(ledgerUC)
	reminderHandler := handler.NewReminderHandler(reminderUC)
	syncHandler := handler.NewSyncHandler(sync)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:        authHandler,
		AssetHandler:       assetHandler,
		TransactionHandler: transactionHandler,
		ReminderHandler:    reminderHandler,
		SyncHandler:        syncHandler,
		HealthHandler:      healthHandler,
		JWTManager:         jwtManager,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		LoggingMiddleware:  middleware.NewLoggingMiddleware(log),
		RateLimiter:        middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()

	log.Info().Msg("shutting down server...")

	// Graceful shutdown. The syncer drains its queue when ctx is cancelled.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
