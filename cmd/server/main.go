package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/arfin-foysal/crypto-sub001/internal/adapter/http"
	"github.com/arfin-foysal/crypto-sub001/internal/adapter/http/handler"
	"github.com/arfin-foysal/crypto-sub001/internal/adapter/http/middleware"
	postgresRepo "github.com/arfin-foysal/crypto-sub001/internal/adapter/repository/postgres"
	redisRepo "github.com/arfin-foysal/crypto-sub001/internal/adapter/repository/redis"
	"github.com/arfin-foysal/crypto-sub001/internal/infrastructure/auth"
	"github.com/arfin-foysal/crypto-sub001/internal/infrastructure/config"
	"github.com/arfin-foysal/crypto-sub001/internal/infrastructure/logger"
	"github.com/arfin-foysal/crypto-sub001/internal/infrastructure/metrics"
	"github.com/arfin-foysal/crypto-sub001/internal/infrastructure/postgres"
	"github.com/arfin-foysal/crypto-sub001/internal/infrastructure/redis"
	"github.com/arfin-foysal/crypto-sub001/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "ledger-api"})

	ctx := context.Background()

	if cfg.MigrateOnStart {
		if err := postgres.RunMigrations(log, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()
	go func() {
		for range time.Tick(15 * time.Second) {
			m.DBConnections.Set(float64(pool.Stat().TotalConns()))
		}
	}()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrier(log)
	userRepo := postgresRepo.NewUserRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	referenceRepo := postgresRepo.NewReferenceRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	refGen := postgresRepo.NewTransactionReferenceGenerator()

	// Use cases
	refs := usecase.NewCachedReferenceStore(referenceRepo, cache, log, m)
	userUC := usecase.NewUserUseCase(userRepo, idGen, m)
	txnUC := usecase.NewTransactionUseCase(
		txManager, retrier, userRepo, txnRepo, refs, idGen, refGen,
		log, m, cfg.BaseCurrencyID, cfg.BaseNetworkID,
	)

	// Handlers
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	transactionHandler := handler.NewTransactionHandler(txnUC)
	userHandler := handler.NewUserHandler(userUC)
	authHandler := handler.NewAuthHandler(userUC, jwtManager)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		go func() {
			for range time.Tick(time.Hour) {
				rateLimiter.Prune(time.Hour)
			}
		}()
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransactionHandler: transactionHandler,
		UserHandler:        userHandler,
		AuthHandler:        authHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		RequestLogger:      middleware.NewLoggingMiddleware(log),
		RateLimiter:        rateLimiter,
		JWTManager:         jwtManager,
		AuthEnabled:        cfg.AuthEnabled && cfg.JWTSecret != "",
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
