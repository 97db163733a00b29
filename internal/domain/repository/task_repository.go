package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
)

// TaskRepository - персистентная машина состояний задачи анализа.
// Все записи охраняются условием на нетерминальный статус.
type TaskRepository interface {
	// GetByID возвращает задачу или ErrTaskNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AnalysisTask, error)

	// AdvanceProgress переводит прогресс from → to (CAS) и ставит статус processing.
	// false - задача уже терминальна или прогресс не совпал.
	AdvanceProgress(ctx context.Context, id uuid.UUID, from, to int) (bool, error)

	// Complete завершает задачу с итогом и прогрессом 100
	Complete(ctx context.Context, id uuid.UUID, summary domain.ResultSummary) (bool, error)

	// Fail переводит задачу в failed с кодом и сообщением
	Fail(ctx context.Context, id uuid.UUID, code, message string) (bool, error)

	// FailStale проваливает все нетерминальные задачи, не обновлявшиеся дольше olderThan.
	// Возраст считается по часам базы, которые ставят updated_at.
	FailStale(ctx context.Context, olderThan time.Duration, code, message string) (int64, error)
}
