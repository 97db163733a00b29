package domain

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// TaskStatus - состояние задачи анализа.
// pending → processing → {completed, failed}; терминальные состояния не меняются.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// TaskTypeFullAnalysis - единственный тип задачи: полный пайплайн
const TaskTypeFullAnalysis = "full_analysis"

// Контрольные точки прогресса по стадиям
const (
	ProgressQueued            = 0
	ProgressExtractionStarted = 10
	ProgressFeaturesParsed    = 30
	ProgressFeaturesStored    = 60
	ProgressScoringStarted    = 70
	ProgressDone              = 100
)

// IsTerminal - completed и failed больше не принимают записей
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusFailed
}

// ResultSummary - итог успешного анализа (jsonb)
type ResultSummary struct {
	Clusters           int     `json:"clusters"`
	Recommendations    int     `json:"recommendations"`
	OverallWalkability float64 `json:"overall_walkability"`
}

func (r ResultSummary) Value() (driver.Value, error) {
	return valueJSON(r)
}

func (r *ResultSummary) Scan(src interface{}) error {
	return scanJSON(src, r)
}

// AnalysisTask - персистентная запись прогресса одного прогона пайплайна.
// Единственный изменяемый объект, который опрашивает клиент.
type AnalysisTask struct {
	ID              uuid.UUID      `json:"id" db:"id"`
	AreaID          uuid.UUID      `json:"area_id" db:"area_id"`
	TaskType        string         `json:"task_type" db:"task_type"`
	Status          TaskStatus     `json:"status" db:"status"`
	Progress        int            `json:"progress" db:"progress"`
	Result          *ResultSummary `json:"result,omitempty" db:"result"`
	ErrorCode       *string        `json:"error_code,omitempty" db:"error_code"`
	ErrorMessage    *string        `json:"error_message,omitempty" db:"error_message"`
	AreaFingerprint string         `json:"-" db:"area_fingerprint"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`
}

// NewAnalysisTask создаёт задачу в состоянии pending с нулевым прогрессом
func NewAnalysisTask(areaID uuid.UUID, fingerprint string, now time.Time) *AnalysisTask {
	return &AnalysisTask{
		ID:              uuid.New(),
		AreaID:          areaID,
		TaskType:        TaskTypeFullAnalysis,
		Status:          TaskStatusPending,
		Progress:        ProgressQueued,
		AreaFingerprint: fingerprint,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
