package repository

import (
	"context"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
)

// OSMRepository - внешний источник сырых OSM-данных (Overpass)
type OSMRepository interface {
	// FetchArea возвращает дороги и amenity-узлы внутри bbox.
	// Любая ошибка транспорта, таймаут или не-2xx ответ - ErrUpstreamFetch.
	FetchArea(ctx context.Context, bbox domain.BoundingBox) (*domain.OSMData, error)
}
