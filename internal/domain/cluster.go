package domain

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// Severity - класс серьёзности кластера
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Пороги серьёзности по walkability score
const (
	criticalBelow = 0.40
	highBelow     = 0.55
	mediumBelow   = 0.70
)

// ClusterMethodSpatialBands - разбиение на полосы вдоль длинной оси bbox
const ClusterMethodSpatialBands = "spatial_bands"

// SeverityForScore классифицирует score: <0.40 critical, <0.55 high, <0.70 medium, иначе low
func SeverityForScore(score float64) Severity {
	switch {
	case score < criticalBelow:
		return SeverityCritical
	case score < highBelow:
		return SeverityHigh
	case score < mediumBelow:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// ClusterMetrics - структурные метрики группы сегментов (jsonb)
type ClusterMetrics struct {
	SidewalkCoverage    float64 `json:"sidewalk_coverage"`
	IntersectionDensity float64 `json:"intersection_density"`
	AmenityDensity      float64 `json:"amenity_density"`
	RoadCount           int     `json:"road_count"`
}

func (m ClusterMetrics) Value() (driver.Value, error) {
	return valueJSON(m)
}

func (m *ClusterMetrics) Scan(src interface{}) error {
	return scanJSON(src, m)
}

// Cluster - оценённая группа дорожных сегментов
type Cluster struct {
	ID               uuid.UUID      `json:"id" db:"id"`
	AreaID           uuid.UUID      `json:"area_id" db:"area_id"`
	Label            string         `json:"label" db:"label"`
	Method           string         `json:"method" db:"method"`
	Metrics          ClusterMetrics `json:"metrics" db:"metrics"`
	WalkabilityScore float64        `json:"walkability_score" db:"walkability_score"`
	Severity         Severity       `json:"severity" db:"severity"`
	CreatedAt        time.Time      `json:"created_at" db:"created_at"`
}
