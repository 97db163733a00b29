package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
	"github.com/Chintnn/walkability-pathfinder/internal/domain/repository"
)

// ResultsUseCase - проекция результатов анализа области
type ResultsUseCase struct {
	areaRepo     repository.AreaRepository
	analysisRepo repository.AnalysisRepository
	cacheRepo    repository.CacheRepository
	logger       *zap.Logger
	cacheTTL     time.Duration
}

// NewResultsUseCase - создание нового ResultsUseCase
func NewResultsUseCase(
	areaRepo repository.AreaRepository,
	analysisRepo repository.AnalysisRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *ResultsUseCase {
	return &ResultsUseCase{
		areaRepo:     areaRepo,
		analysisRepo: analysisRepo,
		cacheRepo:    cacheRepo,
		logger:       logger,
		cacheTTL:     cacheTTL,
	}
}

// GetResults - область, кластеры (score asc), рекомендации (priority asc) и сводка.
// Завершённые области неизменны, поэтому их результаты кешируются.
func (uc *ResultsUseCase) GetResults(ctx context.Context, areaID uuid.UUID) (*domain.AreaResults, error) {
	if cached, err := uc.cacheRepo.GetAreaResults(ctx, areaID); err != nil {
		uc.logger.Warn("Failed to read results cache", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	area, err := uc.areaRepo.GetByID(ctx, areaID)
	if err != nil {
		return nil, err
	}

	var (
		clusters []*domain.Cluster
		recs     []*domain.Recommendation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		clusters, err = uc.analysisRepo.GetClusters(gctx, areaID)
		return err
	})
	g.Go(func() error {
		var err error
		recs, err = uc.analysisRepo.GetRecommendations(gctx, areaID)
		return err
	})
	if err := g.Wait(); err != nil {
		uc.logger.Error("Failed to load area results",
			zap.String("area_id", areaID.String()),
			zap.Error(err))
		return nil, err
	}

	results := BuildAreaResults(area, clusters, recs)

	if area.Status == domain.AreaStatusCompleted {
		if err := uc.cacheRepo.SetAreaResults(ctx, results, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache area results", zap.Error(err))
		}
	}

	return results, nil
}

// BuildAreaResults собирает проекцию; пустые коллекции - пустые массивы, не null
func BuildAreaResults(area *domain.Area, clusters []*domain.Cluster, recs []*domain.Recommendation) *domain.AreaResults {
	if clusters == nil {
		clusters = make([]*domain.Cluster, 0)
	}

	byID := make(map[uuid.UUID]*domain.Cluster, len(clusters))
	critical := 0
	sum := 0.0
	for _, c := range clusters {
		byID[c.ID] = c
		sum += c.WalkabilityScore
		if c.Severity == domain.SeverityCritical {
			critical++
		}
	}

	withClusters := make([]*domain.RecommendationWithCluster, 0, len(recs))
	for _, r := range recs {
		withClusters = append(withClusters, &domain.RecommendationWithCluster{
			Recommendation: *r,
			Cluster:        byID[r.ClusterID],
		})
	}

	overall := 0.0
	if len(clusters) > 0 {
		overall = sum / float64(len(clusters))
	}

	return &domain.AreaResults{
		Area:            area,
		Clusters:        clusters,
		Recommendations: withClusters,
		Summary: domain.ResultsSummary{
			OverallWalkability:   overall,
			TotalClusters:        len(clusters),
			CriticalAreas:        critical,
			TotalRecommendations: len(withClusters),
		},
	}
}
