package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/mistico-store/backend/internal/cache"
	"github.com/mistico-store/backend/internal/cart"
	"github.com/mistico-store/backend/internal/catalog"
	"github.com/mistico-store/backend/internal/config"
	"github.com/mistico-store/backend/internal/consumer"
	httpapi "github.com/mistico-store/backend/internal/http"
	"github.com/mistico-store/backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(logger.Options{
		Service: "tienda-backend",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is empty, tokens signed with an empty key will verify")
	}

	ctx := context.Background()

	// Catalog: sqlite with seed migrations, degrading to the built-in
	// product list if the database is unusable at runtime.
	catalogRepo, err := catalog.NewRepository(cfg.CatalogDBPath)
	if err != nil {
		log.Error("failed to open catalog database", "error", err)
		os.Exit(1)
	}
	defer catalogRepo.Close()

	if err := catalogRepo.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Error("failed to run catalog migrations", "error", err)
		os.Exit(1)
	}
	catalogSource := catalog.NewFallbackSource(catalogRepo, log)
	log.Info("catalog ready", "path", cfg.CatalogDBPath)

	// Cart store: MongoDB.
	mongoDB, err := cart.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer mongoDB.Client().Disconnect(ctx)

	store := cart.NewMongoStore(mongoDB)
	if err := store.CreateIndexes(ctx); err != nil {
		log.Error("failed to create cart indexes", "error", err)
		os.Exit(1)
	}
	log.Info("connected to MongoDB", "uri", cfg.MongoURI)

	// Cart view cache: Redis.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("Redis connection failed", "error", err)
		os.Exit(1)
	}
	log.Info("connected to Redis", "addr", cfg.RedisAddr)

	cartCache := cache.NewRedisCache(redisClient)
	service := cart.NewService(store, catalogSource, cartCache, log)

	// Checkout integration is optional; without brokers the cart is only
	// cleared through the API.
	consumerCtx, stopConsumer := context.WithCancel(ctx)
	defer stopConsumer()
	if len(cfg.KafkaBrokers) > 0 {
		checkoutConsumer := consumer.New(store, cartCache, log, cfg.KafkaBrokers...)
		defer checkoutConsumer.Close()
		go checkoutConsumer.Run(consumerCtx)
		log.Info("checkout consumer running", "brokers", cfg.KafkaBrokers)
	}

	router := httpapi.NewRouter(
		httpapi.RouterConfig{
			JWTSecret:      cfg.JWTSecret,
			RequestTimeout: cfg.RequestTimeout,
		},
		httpapi.NewCartHandler(service),
		httpapi.NewProductHandler(catalogSource),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	stopConsumer()

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}
