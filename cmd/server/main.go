package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	config "github.com/nightcap/bar-directory-api/configs"
	"github.com/nightcap/bar-directory-api/internal/application/services"
	"github.com/nightcap/bar-directory-api/internal/core/ports"
	"github.com/nightcap/bar-directory-api/internal/infrastructure/db"
	"github.com/nightcap/bar-directory-api/internal/infrastructure/health"
	"github.com/nightcap/bar-directory-api/internal/infrastructure/httpserver"
	"github.com/nightcap/bar-directory-api/internal/infrastructure/memorycache"
	"github.com/nightcap/bar-directory-api/internal/infrastructure/redis"
	"github.com/nightcap/bar-directory-api/internal/infrastructure/repositories"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting bar directory API...")

	// Initialize database (apply pool settings from config)
	database, err := db.NewDatabaseWithConfig(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	logger.Info("Connected to database successfully")

	// Initialize Redis client
	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	logger.Info("Connected to Redis successfully")

	// Run migrations
	if err := database.Migrate("./migrations"); err != nil {
		logger.Warn("Failed to run migrations:", err)
	}

	// Pick the list cache backend
	var listCache ports.Cache
	switch cfg.Cache.Backend {
	case "memory":
		listCache = memorycache.New()
		logger.Info("Using in-process memory cache")
	default:
		listCache = redis.NewRedisCache(redisClient, cfg.Cache.KeyPrefix)
		logger.Info("Using Redis cache")
	}

	// Initialize db repository implementations
	baseBarRepo := repositories.NewBarRepository(database, logger)
	baseDrinkRepo := repositories.NewDrinkRepository(database, logger)
	likeRepo := repositories.NewLikeRepository(database, logger)
	rateLimitRepo := repositories.NewRateLimitRedisRepository(redisClient)

	// Decorate the list repositories with the read-through cache
	barRepo := repositories.NewCachingBarRepository(baseBarRepo, listCache, cfg.Cache.BarsTTL)
	drinkRepo := repositories.NewCachingDrinkRepository(baseDrinkRepo, listCache, cfg.Cache.DrinksTTL)

	// Wire services
	barService := services.NewBarService(barRepo, logger)
	drinkService := services.NewDrinkService(drinkRepo, logger)
	likeService := services.NewLikeService(likeRepo, logger)
	cacheAdminService := services.NewCacheAdminService(logger, listCache, barRepo, drinkRepo)

	rateLimiterConfig := &services.RateLimiterConfig{
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		Window:            cfg.RateLimit.Window,
		KeyPrefix:         cfg.RateLimit.KeyPrefix,
	}
	rateLimiterService := services.NewRateLimiterService(rateLimitRepo, rateLimiterConfig, logger)

	if cfg.Admin.ClearCacheSecret == "" {
		logger.Warn("ADMIN_CLEAR_CACHE_SECRET not set - clear-cache endpoint is unauthenticated")
	}

	hcSlice := []ports.HealthChecker{health.NewDBHealthChecker(database), health.NewRedisHealthChecker(redisClient)}

	// Create server configuration
	serverConfig := &httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		TLSCertFile:  cfg.Server.TLSCertFile,
		TLSKeyFile:   cfg.Server.TLSKeyFile,
	}

	deps := httpserver.ServerDeps{
		BarService:         barService,
		DrinkService:       drinkService,
		LikeService:        likeService,
		CacheAdminService:  cacheAdminService,
		RateLimiterService: rateLimiterService,
		HealthCheckers:     hcSlice,
	}

	server := httpserver.NewServer(serverConfig, cfg.Admin.ClearCacheSecret, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
