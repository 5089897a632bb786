package main

import (
	"context"   // Startup and shutdown deadlines
	"errors"    // Server close detection
	"fmt"       // Error wrapping
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Graceful shutdown
	"syscall"   // SIGTERM
	"time"      // Timeouts

	"pc_house/internal/api"     // Custom package for API handlers
	"pc_house/internal/config"  // Custom package for configuration
	"pc_house/internal/db"      // MongoDB connection
	"pc_house/internal/payment" // Payment gateway
	"pc_house/internal/store"   // Document store
	"pc_house/internal/utils"   // Tokens and cache

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	if err := run(); err != nil {
		logrus.Fatal(err)
	}
}

// run serves until a signal or a listener failure; deferred cleanup always runs
func run() error {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx := context.Background()

	// Setup the document store, one shared handle for all requests
	var st store.Store
	switch cfg.StoreDriver {
	case config.StoreMemory:
		logrus.Warn("Using in-memory store; data is lost on restart")
		st = store.NewMemoryStore()
	default:
		client, err := db.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return fmt.Errorf("failed to connect to DB: %w", err)
		}
		defer db.Disconnect(client)
		st = store.NewMongoStore(client.Database(cfg.DBName))
	}

	// Setup Redis cache when configured
	var cache utils.Cache = utils.NoopCache{}
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if err := redisClient.Ping(ctx).Err(); err != nil {
			redisClient.Close()
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		defer redisClient.Close()
		cache = utils.NewRedisCache(redisClient)
	}

	if cfg.StripeSecretKey == "" {
		logrus.Warn("STRIPE_SECRET_KEY is not set; payment intents will fail")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.NewRouter(api.Deps{
		Store:    st,
		Tokens:   utils.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL),
		Cache:    cache,
		CacheTTL: cfg.CacheTTL,
		Gateway:  payment.NewStripeGateway(cfg.StripeSecretKey),
		Currency: cfg.PaymentCurrency,
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logrus.Info("PC House listening on port " + cfg.AppPort) // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Wait for an interrupt and drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}
	logrus.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("graceful shutdown failed: %v", err)
	}
	return nil
}
