package testhelpers

import (
	"time"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
	"github.com/Chintnn/walkability-pathfinder/internal/usecase"
	"github.com/google/uuid"
)

// NewAreaFixture builds a small square area north-east of (lat, lon) with a pending task.
func NewAreaFixture(name string, lat, lon float64) (*domain.Area, *domain.AnalysisTask) {
	const side = 0.005
	now := time.Now().UTC().Truncate(time.Microsecond)

	area := &domain.Area{
		ID:   uuid.New(),
		Name: name,
		Geometry: domain.Polygon{
			Type: "Polygon",
			Coordinates: [][][]float64{{
				{lon, lat},
				{lon + side, lat},
				{lon + side, lat + side},
				{lon, lat + side},
				{lon, lat},
			}},
		},
		BoundingBox: domain.BoundingBox{
			MinLat: lat,
			MinLon: lon,
			MaxLat: lat + side,
			MaxLon: lon + side,
		},
		AreaKm2:   0.19,
		Status:    domain.AreaStatusProcessing,
		CreatedAt: now,
		UpdatedAt: now,
	}

	task := domain.NewAnalysisTask(area.ID, usecase.Fingerprint(area.Geometry.Coordinates), now)
	return area, task
}
