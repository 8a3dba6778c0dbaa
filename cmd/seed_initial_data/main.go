package main

import (
	"context"
	"fmt"
	"os"

	"trivia-api/internal/adapter"
	"trivia-api/internal/cache"
	"trivia-api/internal/config"
	"trivia-api/internal/database"
	"trivia-api/internal/logger"
	"trivia-api/internal/repository"
	"trivia-api/internal/service"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

const defaultSeedFilePath = "configs/seed_data/trivia.json"

func main() {
	seedFilePath := flag.StringP("file", "f", defaultSeedFilePath, "path of the JSON seed file")
	migrateFirst := flag.Bool("migrate", false, "apply migrations before seeding")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		// If logger is not initialized yet, use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting initial data seeding process...")
	db, err := database.NewSQLXDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.String("driver", cfg.DB.Driver), zap.Error(err))
	}
	defer db.Close()

	if *migrateFirst {
		if err := database.NewMigrator(db, cfg.DB.Driver).Up(); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	log.Info("Loading seed data from file", zap.String("path", *seedFilePath))
	seedCategories, err := loadSeedFile(*seedFilePath)
	if err != nil {
		log.Fatal("Failed to load seed data", zap.Error(err))
	}
	log.Info("Successfully unmarshalled seed data", zap.Int("categories_loaded", len(seedCategories)))

	s := &seeder{
		txManager:  repository.NewTransactionManagerAdapter(db),
		categories: repository.NewCategoryDatabaseAdapter(db),
		questions:  repository.NewQuestionDatabaseAdapter(db),
		log:        log,
	}

	createdAny := false
	for _, sc := range seedCategories {
		created, err := s.seedCategory(ctx, sc)
		if err != nil {
			log.Error("Error seeding category, transaction rolled back", zap.String("category", sc.Type), zap.Error(err))
			continue
		}
		createdAny = createdAny || created
	}

	// the API caches the category map, drop it so new categories show up
	if createdAny && cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn("Could not reach Redis to invalidate the category cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			catCache := service.NewCategoryCacheService(s.categories, adapter.NewRedisCacheAdapter(redisClient), cfg.Redis.CategoryTTL)
			if err := catCache.Invalidate(ctx); err != nil {
				log.Warn("Failed to invalidate the category cache", zap.Error(err))
			}
		}
	}
	log.Info("Initial data seeding process completed.")
}
