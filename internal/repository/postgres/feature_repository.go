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

type featureRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewFeatureRepository(db *DB) repository.FeatureRepository {
	return &featureRepository{db: db.DB, logger: db.logger}
}

const insertRoadsQuery = `
	INSERT INTO road_segments (id, area_id, geometry, highway, lanes, speed_limit, sidewalk, surface, osm_id, tags)
	VALUES (
		:id, :area_id,
		ST_SetSRID(ST_GeomFromGeoJSON(CAST(:geometry AS text)), 4326),
		:highway, :lanes, :speed_limit, :sidewalk, :surface, :osm_id, :tags
	)
`

// Узел может попасть в выборку дважды при повторной доставке этапа
const insertIntersectionsQuery = `
	INSERT INTO intersections (id, area_id, geometry, degree, is_major, traffic_signal, osm_id)
	VALUES (
		:id, :area_id,
		ST_SetSRID(ST_MakePoint(:lon, :lat), 4326),
		:degree, :is_major, :traffic_signal, :osm_id
	)
	ON CONFLICT (area_id, osm_id) DO NOTHING
`

const insertAmenitiesQuery = `
	INSERT INTO amenities (id, area_id, geometry, category, name, osm_id, tags)
	VALUES (
		:id, :area_id,
		ST_SetSRID(ST_MakePoint(:lon, :lat), 4326),
		:category, :name, :osm_id, :tags
	)
`

func (r *featureRepository) SaveRoads(ctx context.Context, roads []*domain.RoadSegment) error {
	return saveFeatures(ctx, r, "road_segments", insertRoadsQuery, roads)
}

func (r *featureRepository) SaveIntersections(ctx context.Context, intersections []*domain.Intersection) error {
	return saveFeatures(ctx, r, "intersections", insertIntersectionsQuery, intersections)
}

func (r *featureRepository) SaveAmenities(ctx context.Context, amenities []*domain.Amenity) error {
	return saveFeatures(ctx, r, "amenities", insertAmenitiesQuery, amenities)
}

// saveFeatures пишет пачку одного типа в собственной транзакции
func saveFeatures[T any](ctx context.Context, r *featureRepository, table, query string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return insertBatches(ctx, tx, query, rows)
	})
	if err != nil {
		r.logger.Error("Failed to save features",
			zap.String("table", table),
			zap.Int("rows", len(rows)),
			zap.Error(err),
		)
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *featureRepository) GetRoads(ctx context.Context, areaID uuid.UUID) ([]*domain.RoadSegment, error) {
	query := `
		SELECT
			id, area_id,
			ST_AsGeoJSON(geometry) AS geometry,
			highway, lanes, speed_limit, sidewalk, surface, osm_id, tags
		FROM road_segments
		WHERE area_id = $1
		ORDER BY osm_id, id
	`

	roads := make([]*domain.RoadSegment, 0)
	if err := r.db.SelectContext(ctx, &roads, query, areaID); err != nil {
		r.logger.Error("Failed to get roads", zap.String("area_id", areaID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return roads, nil
}

func (r *featureRepository) GetIntersections(ctx context.Context, areaID uuid.UUID) ([]*domain.Intersection, error) {
	query := `
		SELECT
			id, area_id,
			ST_Y(geometry) AS lat,
			ST_X(geometry) AS lon,
			degree, is_major, traffic_signal, osm_id
		FROM intersections
		WHERE area_id = $1
		ORDER BY osm_id
	`

	intersections := make([]*domain.Intersection, 0)
	if err := r.db.SelectContext(ctx, &intersections, query, areaID); err != nil {
		r.logger.Error("Failed to get intersections", zap.String("area_id", areaID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return intersections, nil
}

func (r *featureRepository) GetAmenities(ctx context.Context, areaID uuid.UUID) ([]*domain.Amenity, error) {
	query := `
		SELECT
			id, area_id,
			ST_Y(geometry) AS lat,
			ST_X(geometry) AS lon,
			category, name, osm_id, tags
		FROM amenities
		WHERE area_id = $1
		ORDER BY osm_id, id
	`

	amenities := make([]*domain.Amenity, 0)
	if err := r.db.SelectContext(ctx, &amenities, query, areaID); err != nil {
		r.logger.Error("Failed to get amenities", zap.String("area_id", areaID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return amenities, nil
}
