package handler

import (
	"context"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
	"github.com/Chintnn/walkability-pathfinder/internal/pkg/errors"
	"github.com/Chintnn/walkability-pathfinder/internal/pkg/utils"
	"github.com/Chintnn/walkability-pathfinder/internal/pkg/validator"
	"github.com/Chintnn/walkability-pathfinder/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnalysisStarter запускает анализ области
type AnalysisStarter interface {
	CreateAnalysis(ctx context.Context, req dto.CreateAnalysisRequest) (*dto.CreateAnalysisResponse, error)
}

// TaskReader читает задачу анализа
type TaskReader interface {
	GetTask(ctx context.Context, id uuid.UUID) (*domain.AnalysisTask, error)
}

// ResultsReader читает проекцию результатов области
type ResultsReader interface {
	GetResults(ctx context.Context, areaID uuid.UUID) (*domain.AreaResults, error)
}

// AnalysisHandler - обработчик запуска анализа, поллинга задачи и чтения результатов
type AnalysisHandler struct {
	starter      AnalysisStarter
	tasks        TaskReader
	results      ResultsReader
	pollAfterSec int
	logger       *zap.Logger
}

// NewAnalysisHandler - создание нового AnalysisHandler
func NewAnalysisHandler(
	starter AnalysisStarter,
	tasks TaskReader,
	results ResultsReader,
	pollAfterSec int,
	logger *zap.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		starter:      starter,
		tasks:        tasks,
		results:      results,
		pollAfterSec: pollAfterSec,
		logger:       logger,
	}
}

// CreateAnalysis godoc
// @Summary Запуск анализа пешеходной доступности
// @Description Валидирует полигон, создаёт область и задачу и ставит извлечение OSM-данных в очередь. Возвращается сразу; прогресс опрашивается через /tasks/{id}.
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.CreateAnalysisRequest true "Название и GeoJSON Polygon области"
// @Success 202 {object} utils.SuccessResponse{data=dto.CreateAnalysisResponse}
// @Failure 400 {object} utils.ErrorResponse "INVALID_GEOMETRY, AREA_TOO_LARGE или INVALID_REQUEST"
// @Failure 409 {object} utils.ErrorResponse "ANALYSIS_IN_PROGRESS"
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/analysis [post]
func (h *AnalysisHandler) CreateAnalysis(c *fiber.Ctx) error {
	var req dto.CreateAnalysisRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	resp, err := h.starter.CreateAnalysis(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendAccepted(c, resp, &utils.Meta{
		PollAfterSec: h.pollAfterSec,
	})
}

// GetTask godoc
// @Summary Статус задачи анализа
// @Description Возвращает статус, прогресс (0-100), итог или ошибку задачи. Поллинг без побочных эффектов.
// @Tags Analysis
// @Produce json
// @Param id path string true "ID задачи (UUID)"
// @Success 200 {object} utils.SuccessResponse{data=dto.TaskStatusResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/tasks/{id} [get]
func (h *AnalysisHandler) GetTask(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	task, err := h.tasks.GetTask(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	resp := dto.NewTaskStatusResponse(task)
	var meta *utils.Meta
	if !resp.Terminal {
		meta = &utils.Meta{PollAfterSec: h.pollAfterSec}
	}

	return utils.SendSuccess(c, resp, meta)
}

// GetResults godoc
// @Summary Результаты анализа области
// @Description Область, кластеры по возрастанию score, рекомендации по возрастанию priority вместе с кластером, и сводка.
// @Tags Analysis
// @Produce json
// @Param id path string true "ID области (UUID)"
// @Success 200 {object} utils.SuccessResponse{data=domain.AreaResults}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/areas/{id}/results [get]
func (h *AnalysisHandler) GetResults(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	results, err := h.results.GetResults(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, results, &utils.Meta{
		Total: len(results.Clusters),
	})
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"id": "must be a UUID",
		})
	}
	return id, nil
}
