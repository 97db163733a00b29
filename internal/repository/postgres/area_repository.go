package postgres

import (
	"context"
	"database/sql"
	stdErrors "errors"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
	"github.com/Chintnn/walkability-pathfinder/internal/domain/repository"
	"github.com/Chintnn/walkability-pathfinder/internal/pkg/errors"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type areaRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewAreaRepository(db *DB) repository.AreaRepository {
	return &areaRepository{db: db.DB, logger: db.logger}
}

const insertAreaQuery = `
	INSERT INTO areas (id, name, geometry, min_lat, min_lon, max_lat, max_lon, area_km2, status, created_at, updated_at)
	VALUES (
		:id, :name,
		ST_SetSRID(ST_GeomFromGeoJSON(CAST(:geometry AS text)), 4326),
		:min_lat, :min_lon, :max_lat, :max_lon,
		:area_km2, :status, :created_at, :updated_at
	)
`

const insertTaskQuery = `
	INSERT INTO analysis_tasks (id, area_id, task_type, status, progress, area_fingerprint, created_at, updated_at)
	VALUES (:id, :area_id, :task_type, :status, :progress, :area_fingerprint, :created_at, :updated_at)
`

func (r *areaRepository) CreateWithTask(ctx context.Context, area *domain.Area, task *domain.AnalysisTask) error {
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, insertAreaQuery, area); err != nil {
			return err
		}
		_, err := tx.NamedExecContext(ctx, insertTaskQuery, task)
		return err
	})
	if err == nil {
		return nil
	}

	if isUniqueViolation(err) {
		r.logger.Info("Active analysis already exists for geometry",
			zap.String("fingerprint", task.AreaFingerprint),
		)
		return errors.ErrAnalysisInProgress
	}

	r.logger.Error("Failed to create area with task",
		zap.String("area_id", area.ID.String()),
		zap.Error(err),
	)
	return errors.ErrDatabaseError
}

func (r *areaRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Area, error) {
	query := `
		SELECT
			id, name,
			ST_AsGeoJSON(geometry) AS geometry,
			min_lat, min_lon, max_lat, max_lon,
			area_km2, status, created_at, updated_at
		FROM areas
		WHERE id = $1
	`

	var area domain.Area
	err := r.db.GetContext(ctx, &area, query, id)
	if stdErrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrAreaNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get area", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &area, nil
}

func (r *areaRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AreaStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE areas SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		r.logger.Error("Failed to update area status",
			zap.String("id", id.String()),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return errors.ErrDatabaseError
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrAreaNotFound
	}
	return nil
}
