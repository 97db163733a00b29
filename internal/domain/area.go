package domain

import (
	"time"

	"github.com/google/uuid"
)

// AreaStatus - статус анализируемой области
type AreaStatus string

const (
	AreaStatusProcessing AreaStatus = "processing"
	AreaStatusCompleted  AreaStatus = "completed"
	AreaStatusFailed     AreaStatus = "failed"
)

// Area - выбранный пользователем полигон. Геометрия неизменна после создания.
type Area struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Geometry    Polygon   `json:"geometry" db:"geometry"`
	BoundingBox `json:"bbox"`
	AreaKm2     float64    `json:"area_km2" db:"area_km2"`
	Status      AreaStatus `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}
