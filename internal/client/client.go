package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
	"github.com/Chintnn/walkability-pathfinder/internal/pkg/errors"
	"github.com/Chintnn/walkability-pathfinder/internal/usecase/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultPollInterval - интервал поллинга задачи
const DefaultPollInterval = 3 * time.Second

// ProgressFunc вызывается на каждом опросе задачи
type ProgressFunc func(task *dto.TaskStatusResponse)

// Client - HTTP клиент API анализа: запуск, поллинг до терминального статуса, чтение результатов
type Client struct {
	httpClient   *http.Client
	baseURL      string
	pollInterval time.Duration
	logger       *zap.Logger
}

// New создает клиент; pollInterval <= 0 означает DefaultPollInterval
func New(baseURL string, pollInterval, requestTimeout time.Duration, logger *zap.Logger) *Client {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient:   &http.Client{Timeout: requestTimeout},
		baseURL:      strings.TrimRight(baseURL, "/"),
		pollInterval: pollInterval,
		logger:       logger,
	}
}

type envelope struct {
	Data  json.RawMessage  `json:"data"`
	Error *errors.AppError `json:"error"`
}

// StartAnalysis запускает анализ области
func (c *Client) StartAnalysis(ctx context.Context, req dto.CreateAnalysisRequest) (*dto.CreateAnalysisResponse, error) {
	var resp dto.CreateAnalysisResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/analysis", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetTask возвращает текущее состояние задачи
func (c *Client) GetTask(ctx context.Context, taskID uuid.UUID) (*dto.TaskStatusResponse, error) {
	var resp dto.TaskStatusResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/tasks/"+taskID.String(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetResults возвращает результаты анализа области
func (c *Client) GetResults(ctx context.Context, areaID uuid.UUID) (*domain.AreaResults, error) {
	var resp domain.AreaResults
	if err := c.do(ctx, http.MethodGet, "/api/v1/areas/"+areaID.String()+"/results", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// WaitForTask опрашивает задачу раз в pollInterval, пока она не станет терминальной.
// Проваленная задача возвращается вместе с AppError из её error_code.
func (c *Client) WaitForTask(ctx context.Context, taskID uuid.UUID, onProgress ProgressFunc) (*dto.TaskStatusResponse, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		task, err := c.GetTask(ctx, taskID)
		if err != nil {
			return nil, err
		}
		if onProgress != nil {
			onProgress(task)
		}

		if task.Terminal {
			if task.Status == domain.TaskStatusFailed {
				return task, taskError(task)
			}
			return task, nil
		}

		select {
		case <-ctx.Done():
			return task, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Analyze запускает анализ, дожидается завершения и один раз читает результаты
func (c *Client) Analyze(ctx context.Context, req dto.CreateAnalysisRequest, onProgress ProgressFunc) (*domain.AreaResults, error) {
	started, err := c.StartAnalysis(ctx, req)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Analysis started",
		zap.String("area_id", started.AreaID.String()),
		zap.String("task_id", started.TaskID.String()))

	if _, err := c.WaitForTask(ctx, started.TaskID, onProgress); err != nil {
		return nil, err
	}

	return c.GetResults(ctx, started.AreaID)
}

func taskError(task *dto.TaskStatusResponse) error {
	code := errors.ErrInternalServer.Code
	if task.ErrorCode != nil {
		code = *task.ErrorCode
	}
	message := "analysis failed"
	if task.ErrorMessage != nil {
		message = *task.ErrorMessage
	}
	return errors.New(code, message, 0)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("Calling analysis API", zap.String("method", method), zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode >= http.StatusBadRequest || env.Error != nil {
		if env.Error == nil {
			return fmt.Errorf("analysis API error: status %d", resp.StatusCode)
		}
		env.Error.StatusCode = resp.StatusCode
		return env.Error
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	return nil
}
