package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
)

// FeatureRepository - извлечённые OSM-объекты области
type FeatureRepository interface {
	SaveRoads(ctx context.Context, roads []*domain.RoadSegment) error
	SaveIntersections(ctx context.Context, intersections []*domain.Intersection) error
	SaveAmenities(ctx context.Context, amenities []*domain.Amenity) error

	GetRoads(ctx context.Context, areaID uuid.UUID) ([]*domain.RoadSegment, error)
	GetIntersections(ctx context.Context, areaID uuid.UUID) ([]*domain.Intersection, error)
	GetAmenities(ctx context.Context, areaID uuid.UUID) ([]*domain.Amenity, error)
}
