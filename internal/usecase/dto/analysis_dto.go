package dto

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
)

// GeometryInput - GeoJSON Polygon от клиента. Координаты приходят сырыми,
// чтобы "не пара чисел" отдавалось как INVALID_GEOMETRY, а не как ошибка парсинга.
type GeometryInput struct {
	Type        string          `json:"type" example:"Polygon"`
	Coordinates json.RawMessage `json:"coordinates" swaggertype:"array,number"`
}

// CreateAnalysisRequest - запрос на запуск анализа области
type CreateAnalysisRequest struct {
	Name     string        `json:"name" validate:"required,min=1,max=255" example:"Downtown"`
	Geometry GeometryInput `json:"geometry"`
}

// CreateAnalysisResponse - ответ на запуск анализа
type CreateAnalysisResponse struct {
	AreaID  uuid.UUID         `json:"area_id"`
	TaskID  uuid.UUID         `json:"task_id"`
	Status  domain.TaskStatus `json:"status" example:"pending"`
	Message string            `json:"message" example:"Analysis started"`
}

// TaskStatusResponse - состояние задачи для поллинга
type TaskStatusResponse struct {
	*domain.AnalysisTask
	Terminal bool `json:"terminal"`
}

// NewTaskStatusResponse оборачивает задачу для ответа клиенту
func NewTaskStatusResponse(task *domain.AnalysisTask) *TaskStatusResponse {
	return &TaskStatusResponse{
		AnalysisTask: task,
		Terminal:     task.Status.IsTerminal(),
	}
}
