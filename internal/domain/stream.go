package domain

import "github.com/google/uuid"

// Stream names стадий пайплайна
const (
	StreamAnalysisExtract = "stream:analysis:extract"
	StreamAnalysisScore   = "stream:analysis:score"
)

// StageEvent - сообщение о запуске стадии анализа.
// Переносит только идентификаторы: всё состояние живёт в БД.
type StageEvent struct {
	AreaID uuid.UUID    `json:"area_id"`
	TaskID uuid.UUID    `json:"task_id"`
	BBox   *BoundingBox `json:"bbox,omitempty"`
}

// Valid проверяет, что событие адресует конкретную задачу
func (e *StageEvent) Valid() bool {
	return e.AreaID != uuid.Nil && e.TaskID != uuid.Nil
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
