package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetAreaResults получает результаты завершённой области; nil, nil при промахе
	GetAreaResults(ctx context.Context, areaID uuid.UUID) (*domain.AreaResults, error)

	// SetAreaResults сохраняет результаты завершённой области
	SetAreaResults(ctx context.Context, results *domain.AreaResults, ttl time.Duration) error
}
