package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
	"github.com/Chintnn/walkability-pathfinder/internal/domain/repository"
	"github.com/Chintnn/walkability-pathfinder/internal/pkg/errors"
)

// TaskUseCase - чтение состояния задачи и обслуживание зависших задач
type TaskUseCase struct {
	taskRepo repository.TaskRepository
	logger   *zap.Logger
}

// NewTaskUseCase - создание нового TaskUseCase
func NewTaskUseCase(taskRepo repository.TaskRepository, logger *zap.Logger) *TaskUseCase {
	return &TaskUseCase{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

// GetTask - задача по id; поллинг не имеет побочных эффектов
func (uc *TaskUseCase) GetTask(ctx context.Context, id uuid.UUID) (*domain.AnalysisTask, error) {
	task, err := uc.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// ExpireStale проваливает задачи, застрявшие в нетерминальном статусе дольше timeout
func (uc *TaskUseCase) ExpireStale(ctx context.Context, timeout time.Duration) (int64, error) {
	n, err := uc.taskRepo.FailStale(ctx, timeout, errors.ErrAnalysisTimeout.Code, errors.ErrAnalysisTimeout.Message)
	if err != nil {
		uc.logger.Error("Failed to expire stale tasks", zap.Error(err))
		return 0, err
	}
	if n > 0 {
		uc.logger.Warn("Stale tasks expired",
			zap.Int64("count", n),
			zap.Duration("timeout", timeout))
	}
	return n, nil
}
