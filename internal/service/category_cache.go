package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"trivia-api/internal/cache"
	"trivia-api/internal/domain"
	"trivia-api/internal/logger"

	"go.uber.org/zap"
)

// DefaultCategoryCacheTTL applies when no TTL is configured
const DefaultCategoryCacheTTL = 5 * time.Minute

var categoryMapKey = cache.GenerateCacheKey("category", "map", "all")

// CategoryCacheService serves the id -> type category map, read through a cache when one is configured
type CategoryCacheService interface {
	GetCategoryMap(ctx context.Context) (map[int64]string, error)
	Invalidate(ctx context.Context) error
}

// categoryCacheServiceImpl implements CategoryCacheService
type categoryCacheServiceImpl struct {
	repo  domain.CategoryRepository
	cache domain.Cache
	ttl   time.Duration
}

// NewCategoryCacheService creates a CategoryCacheService. A nil cache reads the repository on every call.
func NewCategoryCacheService(repo domain.CategoryRepository, cache domain.Cache, ttl time.Duration) CategoryCacheService {
	if ttl <= 0 {
		ttl = DefaultCategoryCacheTTL
	}
	return &categoryCacheServiceImpl{repo: repo, cache: cache, ttl: ttl}
}

// GetCategoryMap implements CategoryCacheService.
// Cache failures are logged and fall back to the repository.
func (s *categoryCacheServiceImpl) GetCategoryMap(ctx context.Context) (map[int64]string, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, categoryMapKey)
		switch {
		case err == nil:
			var categories map[int64]string
			if errUnmarshal := json.Unmarshal([]byte(cached), &categories); errUnmarshal == nil {
				return categories, nil
			} else {
				logger.Get().Warn("CategoryCacheService: Failed to unmarshal cached categories",
					zap.Error(errUnmarshal), zap.String("key", categoryMapKey))
			}
		case errors.Is(err, domain.ErrCacheMiss):
			logger.Get().Debug("CategoryCacheService: Cache miss", zap.String("key", categoryMapKey))
		default:
			logger.Get().Warn("CategoryCacheService: Cache get failed", zap.Error(err), zap.String("key", categoryMapKey))
		}
	}

	list, err := s.repo.GetAllCategories(ctx)
	if err != nil {
		return nil, err
	}
	categories := domain.CategoryMap(list)

	if s.cache != nil && len(categories) > 0 {
		data, err := json.Marshal(categories)
		if err == nil {
			err = s.cache.Set(ctx, categoryMapKey, string(data), s.ttl)
		}
		if err != nil {
			logger.Get().Warn("CategoryCacheService: Cache set failed", zap.Error(err), zap.String("key", categoryMapKey))
		}
	}

	return categories, nil
}

// Invalidate implements CategoryCacheService
func (s *categoryCacheServiceImpl) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, categoryMapKey)
}
