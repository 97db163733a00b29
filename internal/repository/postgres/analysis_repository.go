package postgres

import (
	"context"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
	"github.com/Chintnn/walkability-pathfinder/internal/domain/repository"
	"github.com/Chintnn/walkability-pathfinder/internal/pkg/errors"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type analysisRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewAnalysisRepository(db *DB) repository.AnalysisRepository {
	return &analysisRepository{db: db.DB, logger: db.logger}
}

const insertClustersQuery = `
	INSERT INTO clusters (id, area_id, label, method, metrics, walkability_score, severity, created_at)
	VALUES (:id, :area_id, :label, :method, :metrics, :walkability_score, :severity, :created_at)
`

const insertRecommendationsQuery = `
	INSERT INTO recommendations (id, area_id, cluster_id, action_type, rationale, impact, cost_class, priority, created_at)
	VALUES (:id, :area_id, :cluster_id, :action_type, :rationale, :impact, :cost_class, :priority, :created_at)
`

func (r *analysisRepository) SaveResults(ctx context.Context, clusters []*domain.Cluster, recommendations []*domain.Recommendation) error {
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if len(clusters) > 0 {
			if err := insertBatches(ctx, tx, insertClustersQuery, clusters); err != nil {
				return err
			}
		}
		if len(recommendations) > 0 {
			if err := insertBatches(ctx, tx, insertRecommendationsQuery, recommendations); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to save analysis results",
			zap.Int("clusters", len(clusters)),
			zap.Int("recommendations", len(recommendations)),
			zap.Error(err),
		)
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *analysisRepository) GetClusters(ctx context.Context, areaID uuid.UUID) ([]*domain.Cluster, error) {
	query := `
		SELECT id, area_id, label, method, metrics, walkability_score, severity, created_at
		FROM clusters
		WHERE area_id = $1
		ORDER BY walkability_score ASC, label ASC
	`

	clusters := make([]*domain.Cluster, 0)
	if err := r.db.SelectContext(ctx, &clusters, query, areaID); err != nil {
		r.logger.Error("Failed to get clusters", zap.String("area_id", areaID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return clusters, nil
}

func (r *analysisRepository) GetRecommendations(ctx context.Context, areaID uuid.UUID) ([]*domain.Recommendation, error) {
	query := `
		SELECT id, area_id, cluster_id, action_type, rationale, impact, cost_class, priority, created_at
		FROM recommendations
		WHERE area_id = $1
		ORDER BY priority ASC, created_at ASC, id ASC
	`

	recommendations := make([]*domain.Recommendation, 0)
	if err := r.db.SelectContext(ctx, &recommendations, query, areaID); err != nil {
		r.logger.Error("Failed to get recommendations", zap.String("area_id", areaID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return recommendations, nil
}
