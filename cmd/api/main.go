// @title Trivia API
// @version 1.0
// @description Question bank and quiz backend for the trivia game.
// @contact.name API Support
// @license.name MIT
// @host localhost:5000
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "trivia-api/cmd/api/docs"
	"trivia-api/internal/adapter"
	"trivia-api/internal/cache"
	"trivia-api/internal/config"
	"trivia-api/internal/database"
	"trivia-api/internal/domain"
	"trivia-api/internal/handler"
	"trivia-api/internal/logger"
	"trivia-api/internal/metrics"
	"trivia-api/internal/repository"
	"trivia-api/internal/router"
	"trivia-api/internal/service"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXDB(cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.String("driver", cfg.DB.Driver), zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to database", zap.String("driver", cfg.DB.Driver))

	// Initialize repositories
	questionRepository := repository.NewQuestionDatabaseAdapter(db)
	categoryRepository := repository.NewCategoryDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	healthChecks := map[string]router.HealthCheck{
		"database": db.PingContext,
	}

	// Redis is optional and only fronts the category map
	var categoryCache domain.Cache
	if cfg.Redis.Address != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		cancel()
		if err != nil {
			appLogger.Warn("Redis unavailable, category cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			categoryCache = adapter.NewRedisCacheAdapter(redisClient)
			healthChecks["redis"] = categoryCache.Ping
			appLogger.Info("Category cache enabled", zap.String("address", cfg.Redis.Address), zap.Duration("ttl", cfg.Redis.CategoryTTL))
		}
	}

	// Initialize services
	categoryCacheService := service.NewCategoryCacheService(categoryRepository, categoryCache, cfg.Redis.CategoryTTL)
	triviaService := service.NewTriviaService(questionRepository, categoryRepository, categoryCacheService, txManager, domain.NewQuizSelector())

	var appMetrics *metrics.Metrics
	if cfg.Metrics.Enabled {
		appMetrics = metrics.New()
	}

	// Initialize handlers
	var recorder handler.QuizOutcomeRecorder
	if appMetrics != nil {
		recorder = appMetrics
	}
	triviaHandler := handler.NewTriviaHandler(triviaService, recorder)

	app := router.New(triviaHandler, router.Options{
		Server:       cfg.Server,
		AllowOrigins: cfg.CORS.AllowOrigins,
		Metrics:      appMetrics,
		HealthChecks: healthChecks,
		Swagger:      true,
	})

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
