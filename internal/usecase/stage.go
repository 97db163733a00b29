package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Chintnn/walkability-pathfinder/internal/domain/repository"
	"github.com/Chintnn/walkability-pathfinder/internal/pkg/errors"
)

// failTask записывает провал стадии. При отменённом ctx задача остаётся свипперу.
func failTask(
	ctx context.Context,
	taskRepo repository.TaskRepository,
	logger *zap.Logger,
	taskID uuid.UUID,
	appErr *errors.AppError,
	cause error,
) {
	if ctx.Err() != nil && cause != nil {
		logger.Warn("Stage interrupted, task left for stale sweeper",
			zap.String("error_code", appErr.Code),
			zap.NamedError("cause", cause))
		return
	}
	recordFailure(ctx, taskRepo, logger, taskID, appErr, cause)
}

// recordFailure записывает провал задачи даже при отменённом ctx. Повторный провал
// или провал терминальной задачи охраняется на стороне хранилища и здесь только логируется.
func recordFailure(
	ctx context.Context,
	taskRepo repository.TaskRepository,
	logger *zap.Logger,
	taskID uuid.UUID,
	appErr *errors.AppError,
	cause error,
) {
	message := appErr.Message
	if cause != nil {
		message = fmt.Sprintf("%s: %v", appErr.Message, cause)
	}

	ok, err := taskRepo.Fail(context.WithoutCancel(ctx), taskID, appErr.Code, message)
	if err != nil {
		logger.Error("Failed to mark task as failed",
			zap.String("error_code", appErr.Code),
			zap.Error(err))
		return
	}
	if !ok {
		logger.Warn("Task already terminal, failure not recorded",
			zap.String("error_code", appErr.Code))
		return
	}

	logger.Warn("Task failed",
		zap.String("error_code", appErr.Code),
		zap.String("error_message", message))
}

// recoverStage превращает панику стадии в провал задачи
func recoverStage(ctx context.Context, taskRepo repository.TaskRepository, logger *zap.Logger, taskID uuid.UUID) {
	if r := recover(); r != nil {
		logger.Error("Stage panicked", zap.Any("panic", r))
		recordFailure(ctx, taskRepo, logger, taskID, errors.ErrInternalServer, fmt.Errorf("panic: %v", r))
	}
}
