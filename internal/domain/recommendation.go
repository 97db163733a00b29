package domain

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// ActionType - вид предлагаемого вмешательства
type ActionType string

const (
	ActionAddSidewalk   ActionType = "add_sidewalk"
	ActionAddCrossing   ActionType = "add_crossing"
	ActionImproveAccess ActionType = "improve_access"
)

// CostClass - грубая оценка стоимости
type CostClass string

const (
	CostLow    CostClass = "low"
	CostMedium CostClass = "medium"
	CostHigh   CostClass = "high"
)

// ImpactEstimate - ожидаемый эффект вмешательства (jsonb)
type ImpactEstimate struct {
	WalkabilityDelta   float64 `json:"walkability_delta"`
	CO2ReductionKgYear float64 `json:"co2_reduction_kg_year"`
	AccessibilityDelta float64 `json:"accessibility_delta"`
}

func (i ImpactEstimate) Value() (driver.Value, error) {
	return valueJSON(i)
}

func (i *ImpactEstimate) Scan(src interface{}) error {
	return scanJSON(src, i)
}

// PriorityForSeverity - critical→1, high→2, остальное→3
func PriorityForSeverity(s Severity) int {
	switch s {
	case SeverityCritical:
		return 1
	case SeverityHigh:
		return 2
	default:
		return 3
	}
}

// Recommendation - предлагаемое вмешательство для кластера
type Recommendation struct {
	ID         uuid.UUID      `json:"id" db:"id"`
	AreaID     uuid.UUID      `json:"area_id" db:"area_id"`
	ClusterID  uuid.UUID      `json:"cluster_id" db:"cluster_id"`
	ActionType ActionType     `json:"action_type" db:"action_type"`
	Rationale  string         `json:"rationale" db:"rationale"`
	Impact     ImpactEstimate `json:"impact" db:"impact"`
	CostClass  CostClass      `json:"cost_class" db:"cost_class"`
	Priority   int            `json:"priority" db:"priority"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
}
