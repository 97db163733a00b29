package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
	"github.com/Chintnn/walkability-pathfinder/internal/domain/repository"
	"github.com/Chintnn/walkability-pathfinder/internal/pkg/errors"
	"github.com/Chintnn/walkability-pathfinder/internal/usecase/dto"
)

// IntakeUseCase - приём области: валидация, сохранение, постановка экстракции в очередь
type IntakeUseCase struct {
	areaRepo   repository.AreaRepository
	taskRepo   repository.TaskRepository
	streamRepo repository.StreamRepository
	logger     *zap.Logger
	maxAreaKm2 float64
	now        func() time.Time
}

// NewIntakeUseCase - создание нового IntakeUseCase
func NewIntakeUseCase(
	areaRepo repository.AreaRepository,
	taskRepo repository.TaskRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
	maxAreaKm2 float64,
) *IntakeUseCase {
	return &IntakeUseCase{
		areaRepo:   areaRepo,
		taskRepo:   taskRepo,
		streamRepo: streamRepo,
		logger:     logger,
		maxAreaKm2: maxAreaKm2,
		now:        time.Now,
	}
}

// CreateAnalysis - запуск анализа области. Возвращается сразу после постановки в очередь.
func (uc *IntakeUseCase) CreateAnalysis(ctx context.Context, req dto.CreateAnalysisRequest) (*dto.CreateAnalysisResponse, error) {
	geom, err := ValidateGeometry(req.Geometry)
	if err != nil {
		return nil, err
	}

	if geom.AreaKm2 > uc.maxAreaKm2 {
		return nil, errors.ErrAreaTooLarge.
			WithMessage(fmt.Sprintf("Area too large. Maximum %g km² allowed", uc.maxAreaKm2)).
			WithDetails(map[string]interface{}{
				"area_km2":     geom.AreaKm2,
				"max_area_km2": uc.maxAreaKm2,
			})
	}

	now := uc.now().UTC()
	area := &domain.Area{
		ID:          uuid.New(),
		Name:        req.Name,
		Geometry:    geom.Polygon,
		BoundingBox: geom.BBox,
		AreaKm2:     geom.AreaKm2,
		Status:      domain.AreaStatusProcessing,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	task := domain.NewAnalysisTask(area.ID, geom.Fingerprint, now)

	if err := uc.areaRepo.CreateWithTask(ctx, area, task); err != nil {
		if appErr, ok := errors.As(err); ok && appErr.Code == errors.ErrAnalysisInProgress.Code {
			return nil, err
		}
		uc.logger.Error("Failed to create area and task", zap.Error(err))
		return nil, errors.ErrPersistence
	}

	logger := uc.logger.With(
		zap.String("area_id", area.ID.String()),
		zap.String("task_id", task.ID.String()),
	)
	logger.Info("Analysis accepted", zap.Float64("area_km2", geom.AreaKm2))

	resp := &dto.CreateAnalysisResponse{
		AreaID:  area.ID,
		TaskID:  task.ID,
		Status:  task.Status,
		Message: "Analysis started",
	}

	bbox := area.BoundingBox
	event := domain.StageEvent{AreaID: area.ID, TaskID: task.ID, BBox: &bbox}
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamAnalysisExtract, event); err != nil {
		// Интейк не падает: провал виден клиенту через поллинг задачи
		logger.Error("Failed to enqueue extraction stage", zap.Error(err))
		recordFailure(ctx, uc.taskRepo, logger, task.ID, errors.ErrDispatchFailed, err)
		resp.Status = domain.TaskStatusFailed
		resp.Message = errors.ErrDispatchFailed.Message
	}

	return resp, nil
}
