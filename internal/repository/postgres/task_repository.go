package postgres

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"time"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
	"github.com/Chintnn/walkability-pathfinder/internal/domain/repository"
	"github.com/Chintnn/walkability-pathfinder/internal/pkg/errors"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// activeStatusClause - все переходы задачи разрешены только из нетерминальных статусов
const activeStatusClause = `status IN ('pending', 'processing')`

type taskRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewTaskRepository(db *DB) repository.TaskRepository {
	return &taskRepository{db: db.DB, logger: db.logger}
}

func (r *taskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AnalysisTask, error) {
	query := `
		SELECT
			id, area_id, task_type, status, progress, result,
			error_code, error_message, area_fingerprint,
			created_at, updated_at
		FROM analysis_tasks
		WHERE id = $1
	`

	var task domain.AnalysisTask
	err := r.db.GetContext(ctx, &task, query, id)
	if stdErrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrTaskNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get task", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &task, nil
}

// AdvanceProgress переводит задачу from -> to только если прогресс всё ещё from.
// false означает, что чекпоинт уже пройден другим обработчиком или задача завершена.
func (r *taskRepository) AdvanceProgress(ctx context.Context, id uuid.UUID, from, to int) (bool, error) {
	query := `
		UPDATE analysis_tasks
		SET status = 'processing', progress = $3, updated_at = NOW()
		WHERE id = $1 AND progress = $2 AND ` + activeStatusClause

	return r.execGuarded(ctx, "advance progress", id, query, id, from, to)
}

func (r *taskRepository) Complete(ctx context.Context, id uuid.UUID, summary domain.ResultSummary) (bool, error) {
	query := `
		UPDATE analysis_tasks
		SET status = 'completed', progress = 100, result = $2,
			error_code = NULL, error_message = NULL, updated_at = NOW()
		WHERE id = $1 AND ` + activeStatusClause

	return r.execGuarded(ctx, "complete", id, query, id, summary)
}

func (r *taskRepository) Fail(ctx context.Context, id uuid.UUID, code, message string) (bool, error) {
	query := `
		UPDATE analysis_tasks
		SET status = 'failed', error_code = $2, error_message = $3, updated_at = NOW()
		WHERE id = $1 AND ` + activeStatusClause

	return r.execGuarded(ctx, "fail", id, query, id, code, message)
}

func (r *taskRepository) FailStale(ctx context.Context, olderThan time.Duration, code, message string) (int64, error) {
	query := `
		UPDATE analysis_tasks
		SET status = 'failed', error_code = $2, error_message = $3, updated_at = NOW()
		WHERE updated_at < NOW() - make_interval(secs => $1) AND ` + activeStatusClause

	res, err := r.db.ExecContext(ctx, query, olderThan.Seconds(), code, message)
	if err != nil {
		r.logger.Error("Failed to expire stale tasks", zap.Duration("older_than", olderThan), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.ErrDatabaseError
	}
	return n, nil
}

func (r *taskRepository) execGuarded(ctx context.Context, op string, id uuid.UUID, query string, args ...interface{}) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update task",
			zap.String("op", op),
			zap.String("id", id.String()),
			zap.Error(err),
		)
		return false, errors.ErrDatabaseError
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.ErrDatabaseError
	}
	return n == 1, nil
}
