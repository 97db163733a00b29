package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
	"github.com/Chintnn/walkability-pathfinder/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const areaResultsKeyPrefix = "analysis:results:"

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func areaResultsKey(areaID uuid.UUID) string {
	return areaResultsKeyPrefix + areaID.String()
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// GetAreaResults получает результаты области из кеша
func (r *cacheRepository) GetAreaResults(ctx context.Context, areaID uuid.UUID) (*domain.AreaResults, error) {
	data, err := r.Get(ctx, areaResultsKey(areaID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var results domain.AreaResults
	if err := json.Unmarshal(data, &results); err != nil {
		r.logger.Error("Failed to unmarshal area results from cache",
			zap.String("area_id", areaID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("unmarshal area results: %w", err)
	}

	return &results, nil
}

// SetAreaResults сохраняет результаты области в кеше
func (r *cacheRepository) SetAreaResults(ctx context.Context, results *domain.AreaResults, ttl time.Duration) error {
	if results == nil || results.Area == nil {
		return fmt.Errorf("area results without area")
	}

	data, err := json.Marshal(results)
	if err != nil {
		r.logger.Error("Failed to marshal area results", zap.Error(err))
		return fmt.Errorf("marshal area results: %w", err)
	}

	return r.Set(ctx, areaResultsKey(results.Area.ID), data, ttl)
}
