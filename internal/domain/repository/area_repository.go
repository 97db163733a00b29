package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
)

// AreaRepository - хранилище анализируемых областей
type AreaRepository interface {
	// CreateWithTask атомарно сохраняет область и её задачу анализа.
	// Если для того же отпечатка геометрии уже есть активная задача - ErrAnalysisInProgress.
	CreateWithTask(ctx context.Context, area *domain.Area, task *domain.AnalysisTask) error

	// GetByID возвращает область или ErrAreaNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Area, error)

	// UpdateStatus меняет статус области
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AreaStatus) error
}
