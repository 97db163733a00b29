package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
)

// AnalysisRepository - кластеры и рекомендации
type AnalysisRepository interface {
	// SaveResults сохраняет кластеры и рекомендации в одной транзакции
	SaveResults(ctx context.Context, clusters []*domain.Cluster, recommendations []*domain.Recommendation) error

	// GetClusters - кластеры области по возрастанию score
	GetClusters(ctx context.Context, areaID uuid.UUID) ([]*domain.Cluster, error)

	// GetRecommendations - рекомендации области по возрастанию priority
	GetRecommendations(ctx context.Context, areaID uuid.UUID) ([]*domain.Recommendation, error)
}
