package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
	"github.com/Chintnn/walkability-pathfinder/internal/domain/repository"
	"github.com/Chintnn/walkability-pathfinder/internal/pkg/errors"
)

// ScoringUseCase - стадия кластеризации, оценки и синтеза рекомендаций
type ScoringUseCase struct {
	areaRepo     repository.AreaRepository
	taskRepo     repository.TaskRepository
	featureRepo  repository.FeatureRepository
	analysisRepo repository.AnalysisRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewScoringUseCase - создание нового ScoringUseCase
func NewScoringUseCase(
	areaRepo repository.AreaRepository,
	taskRepo repository.TaskRepository,
	featureRepo repository.FeatureRepository,
	analysisRepo repository.AnalysisRepository,
	logger *zap.Logger,
) *ScoringUseCase {
	return &ScoringUseCase{
		areaRepo:     areaRepo,
		taskRepo:     taskRepo,
		featureRepo:  featureRepo,
		analysisRepo: analysisRepo,
		logger:       logger,
		now:          time.Now,
	}
}

type areaFeatures struct {
	roads         []*domain.RoadSegment
	intersections []*domain.Intersection
	amenities     []*domain.Amenity
}

// HandleStage выполняет оценку для задачи из события.
// При любом провале область остаётся в текущем статусе, авторитетен статус задачи.
func (uc *ScoringUseCase) HandleStage(ctx context.Context, event domain.StageEvent) error {
	logger := uc.logger.With(
		zap.String("stage", "scoring"),
		zap.String("area_id", event.AreaID.String()),
		zap.String("task_id", event.TaskID.String()),
	)
	defer recoverStage(ctx, uc.taskRepo, logger, event.TaskID)

	claimed, err := uc.taskRepo.AdvanceProgress(ctx, event.TaskID, domain.ProgressFeaturesStored, domain.ProgressScoringStarted)
	if err != nil {
		return fmt.Errorf("failed to claim task: %w", err)
	}
	if !claimed {
		logger.Info("Task already claimed or terminal, skipping")
		return nil
	}

	features, err := uc.loadFeatures(ctx, event)
	if err != nil {
		failTask(ctx, uc.taskRepo, logger, event.TaskID, errors.ErrPersistence, err)
		return nil
	}

	if len(features.roads) == 0 {
		failTask(ctx, uc.taskRepo, logger, event.TaskID, errors.ErrNoRoadData, nil)
		return nil
	}

	bbox, err := uc.resolveBBox(ctx, event)
	if err != nil {
		failTask(ctx, uc.taskRepo, logger, event.TaskID, errors.ErrPersistence, err)
		return nil
	}

	now := uc.now().UTC()
	clusters := BuildClusters(event.AreaID, bbox, features.roads, features.intersections, features.amenities, now)
	recommendations := SynthesizeRecommendations(clusters, now)

	if err := uc.analysisRepo.SaveResults(ctx, clusters, recommendations); err != nil {
		failTask(ctx, uc.taskRepo, logger, event.TaskID, errors.ErrPersistence, err)
		return nil
	}

	summary := domain.ResultSummary{
		Clusters:           len(clusters),
		Recommendations:    len(recommendations),
		OverallWalkability: OverallWalkability(clusters),
	}
	completed, err := uc.taskRepo.Complete(ctx, event.TaskID, summary)
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	if !completed {
		logger.Warn("Task became terminal before completion was recorded, area left as is")
		return nil
	}

	// Область завершается только после задачи
	if err := uc.areaRepo.UpdateStatus(ctx, event.AreaID, domain.AreaStatusCompleted); err != nil {
		logger.Error("Task completed but area status was not updated", zap.Error(err))
	}

	logger.Info("Analysis completed",
		zap.Int("clusters", summary.Clusters),
		zap.Int("recommendations", summary.Recommendations),
		zap.Float64("overall_walkability", summary.OverallWalkability))
	return nil
}

// loadFeatures читает три коллекции параллельно
func (uc *ScoringUseCase) loadFeatures(ctx context.Context, event domain.StageEvent) (*areaFeatures, error) {
	features := &areaFeatures{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		roads, err := uc.featureRepo.GetRoads(gctx, event.AreaID)
		if err != nil {
			return fmt.Errorf("failed to load road segments: %w", err)
		}
		features.roads = roads
		return nil
	})
	g.Go(func() error {
		intersections, err := uc.featureRepo.GetIntersections(gctx, event.AreaID)
		if err != nil {
			return fmt.Errorf("failed to load intersections: %w", err)
		}
		features.intersections = intersections
		return nil
	})
	g.Go(func() error {
		amenities, err := uc.featureRepo.GetAmenities(gctx, event.AreaID)
		if err != nil {
			return fmt.Errorf("failed to load amenities: %w", err)
		}
		features.amenities = amenities
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return features, nil
}

func (uc *ScoringUseCase) resolveBBox(ctx context.Context, event domain.StageEvent) (domain.BoundingBox, error) {
	if event.BBox != nil {
		return *event.BBox, nil
	}
	area, err := uc.areaRepo.GetByID(ctx, event.AreaID)
	if err != nil {
		return domain.BoundingBox{}, fmt.Errorf("failed to load area: %w", err)
	}
	return area.BoundingBox, nil
}
