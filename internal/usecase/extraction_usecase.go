package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
	"github.com/Chintnn/walkability-pathfinder/internal/domain/repository"
	"github.com/Chintnn/walkability-pathfinder/internal/pkg/errors"
)

// ExtractionUseCase - стадия извлечения OSM-объектов
type ExtractionUseCase struct {
	areaRepo    repository.AreaRepository
	taskRepo    repository.TaskRepository
	featureRepo repository.FeatureRepository
	osmRepo     repository.OSMRepository
	streamRepo  repository.StreamRepository
	logger      *zap.Logger
}

// NewExtractionUseCase - создание нового ExtractionUseCase
func NewExtractionUseCase(
	areaRepo repository.AreaRepository,
	taskRepo repository.TaskRepository,
	featureRepo repository.FeatureRepository,
	osmRepo repository.OSMRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
) *ExtractionUseCase {
	return &ExtractionUseCase{
		areaRepo:    areaRepo,
		taskRepo:    taskRepo,
		featureRepo: featureRepo,
		osmRepo:     osmRepo,
		streamRepo:  streamRepo,
		logger:      logger,
	}
}

// HandleStage выполняет извлечение для задачи из события.
// Ошибка возвращается только если задачу не удалось ни продвинуть, ни провалить.
func (uc *ExtractionUseCase) HandleStage(ctx context.Context, event domain.StageEvent) error {
	logger := uc.logger.With(
		zap.String("stage", "extraction"),
		zap.String("area_id", event.AreaID.String()),
		zap.String("task_id", event.TaskID.String()),
	)
	defer recoverStage(ctx, uc.taskRepo, logger, event.TaskID)

	claimed, err := uc.taskRepo.AdvanceProgress(ctx, event.TaskID, domain.ProgressQueued, domain.ProgressExtractionStarted)
	if err != nil {
		return fmt.Errorf("failed to claim task: %w", err)
	}
	if !claimed {
		logger.Info("Task already claimed or terminal, skipping")
		return nil
	}

	bbox, err := uc.resolveBBox(ctx, event)
	if err != nil {
		failTask(ctx, uc.taskRepo, logger, event.TaskID, errors.ErrPersistence, err)
		return nil
	}

	data, err := uc.osmRepo.FetchArea(ctx, bbox)
	if err != nil {
		failTask(ctx, uc.taskRepo, logger, event.TaskID, errors.ErrUpstreamFetch, unwrapUpstream(err))
		return nil
	}

	features := ExtractFeatures(event.AreaID, data)
	logger.Info("OSM data parsed",
		zap.Int("roads", len(features.Roads)),
		zap.Int("intersections", len(features.Intersections)),
		zap.Int("amenities", len(features.Amenities)))

	if !uc.advance(ctx, logger, event, domain.ProgressExtractionStarted, domain.ProgressFeaturesParsed) {
		return nil
	}

	// Коллекции сохраняются независимо: провал одной не отменяет остальные
	if err := uc.featureRepo.SaveRoads(ctx, features.Roads); err != nil {
		logger.Error("Failed to save road segments", zap.Error(err))
	}
	if err := uc.featureRepo.SaveIntersections(ctx, features.Intersections); err != nil {
		logger.Error("Failed to save intersections", zap.Error(err))
	}
	if err := uc.featureRepo.SaveAmenities(ctx, features.Amenities); err != nil {
		logger.Error("Failed to save amenities", zap.Error(err))
	}

	if !uc.advance(ctx, logger, event, domain.ProgressFeaturesParsed, domain.ProgressFeaturesStored) {
		return nil
	}

	next := domain.StageEvent{AreaID: event.AreaID, TaskID: event.TaskID, BBox: &bbox}
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamAnalysisScore, next); err != nil {
		failTask(ctx, uc.taskRepo, logger, event.TaskID, errors.ErrDispatchFailed, err)
		return nil
	}

	logger.Info("Extraction finished, scoring enqueued")
	return nil
}

func (uc *ExtractionUseCase) resolveBBox(ctx context.Context, event domain.StageEvent) (domain.BoundingBox, error) {
	if event.BBox != nil {
		return *event.BBox, nil
	}
	area, err := uc.areaRepo.GetByID(ctx, event.AreaID)
	if err != nil {
		return domain.BoundingBox{}, fmt.Errorf("failed to load area: %w", err)
	}
	return area.BoundingBox, nil
}

// advance сдвигает прогресс; false - задачу завершил кто-то другой (например, sweeper)
func (uc *ExtractionUseCase) advance(ctx context.Context, logger *zap.Logger, event domain.StageEvent, from, to int) bool {
	ok, err := uc.taskRepo.AdvanceProgress(ctx, event.TaskID, from, to)
	if err != nil {
		failTask(ctx, uc.taskRepo, logger, event.TaskID, errors.ErrPersistence, err)
		return false
	}
	if !ok {
		logger.Warn("Task left the expected state, stopping stage",
			zap.Int("from", from),
			zap.Int("to", to))
		return false
	}
	return true
}

// unwrapUpstream убирает обёртку ErrUpstreamFetch, чтобы сообщение не дублировалось
func unwrapUpstream(err error) error {
	if appErr, ok := errors.As(err); ok && appErr.Code == errors.ErrUpstreamFetch.Code {
		if reason, ok := appErr.Details["reason"].(string); ok {
			return fmt.Errorf("%s", reason)
		}
		return nil
	}
	return err
}
