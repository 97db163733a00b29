package analysis_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
	"github.com/Chintnn/walkability-pathfinder/internal/worker/analysis"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, maxCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	args := m.Called(ctx, stream, group, messageIDs)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockStageHandler is a mock of StageHandler
type MockStageHandler struct {
	mock.Mock
}

func (m *MockStageHandler) HandleStage(ctx context.Context, event domain.StageEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func eventMessage(id string, event domain.StageEvent) domain.StreamMessage {
	data, _ := json.Marshal(event)
	return domain.StreamMessage{ID: id, Data: string(data)}
}

// runUntil starts the worker and stops it after d
func runUntil(t *testing.T, w *analysis.StageWorker, d time.Duration) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	select {
	case <-done:
	case <-time.After(d + 2*time.Second):
		t.Fatal("Worker did not stop in time")
	}
}

func TestStageWorker_Names(t *testing.T) {
	extraction := analysis.NewExtractionWorker(&MockStreamRepository{}, &MockStageHandler{}, "g", 10, zap.NewNop())
	scoring := analysis.NewScoringWorker(&MockStreamRepository{}, &MockStageHandler{}, "g", 10, zap.NewNop())

	assert.Equal(t, "analysis-extraction", extraction.Name())
	assert.Equal(t, "analysis-scoring", scoring.Name())
	assert.NotEqual(t, extraction.ConsumerName(), scoring.ConsumerName())
}

func TestStageWorker_Stop(t *testing.T) {
	w := analysis.NewExtractionWorker(&MockStreamRepository{}, &MockStageHandler{}, "g", 10, zap.NewNop())

	assert.NoError(t, w.Stop())
	// Calling stop multiple times should be safe
	assert.NoError(t, w.Stop())
	assert.True(t, w.IsStopped())
}

func TestStageWorker_ConsumerGroupFailure(t *testing.T) {
	stream := &MockStreamRepository{}
	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamAnalysisExtract, "g").
		Return(errors.New("redis down"))

	w := analysis.NewExtractionWorker(stream, &MockStageHandler{}, "g", 10, zap.NewNop())

	err := w.Start(context.Background())
	assert.Error(t, err)
	stream.AssertNotCalled(t, "ConsumeBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStageWorker_ContextCancellation(t *testing.T) {
	stream := &MockStreamRepository{}
	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamAnalysisScore, "g").Return(nil)
	stream.On("ConsumeBatch", mock.Anything, domain.StreamAnalysisScore, "g", mock.AnythingOfType("string"), 10).
		Return([]domain.StreamMessage{}, nil)

	w := analysis.NewScoringWorker(stream, &MockStageHandler{}, "g", 10, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.Equal(t, context.Canceled, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not stop on context cancellation")
	}

	stream.AssertExpectations(t)
}

func TestStageWorker_HandlesAndAcksBatch(t *testing.T) {
	stream := &MockStreamRepository{}
	handler := &MockStageHandler{}

	ok := domain.StageEvent{AreaID: uuid.New(), TaskID: uuid.New()}
	failing := domain.StageEvent{AreaID: uuid.New(), TaskID: uuid.New()}

	messages := []domain.StreamMessage{
		eventMessage("1-0", ok),
		eventMessage("1-1", failing),
	}

	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamAnalysisExtract, "g").Return(nil)
	stream.On("ConsumeBatch", mock.Anything, domain.StreamAnalysisExtract, "g", mock.AnythingOfType("string"), 5).
		Return(messages, nil).Once()
	stream.On("ConsumeBatch", mock.Anything, domain.StreamAnalysisExtract, "g", mock.AnythingOfType("string"), 5).
		Return([]domain.StreamMessage{}, nil)

	handler.On("HandleStage", mock.Anything, ok).Return(nil).Once()
	// a failed stage is still acknowledged: no retries
	handler.On("HandleStage", mock.Anything, failing).Return(errors.New("UPSTREAM_FETCH_ERROR")).Once()

	stream.On("AckMessages", mock.Anything, domain.StreamAnalysisExtract, "g", []string{"1-0", "1-1"}).
		Return(nil).Once()

	w := analysis.NewExtractionWorker(stream, handler, "g", 5, zap.NewNop())
	runUntil(t, w, 500*time.Millisecond)

	stream.AssertExpectations(t)
	handler.AssertExpectations(t)
}

func TestStageWorker_SkipsMalformedMessages(t *testing.T) {
	stream := &MockStreamRepository{}
	handler := &MockStageHandler{}

	messages := []domain.StreamMessage{
		{ID: "2-0", Data: ""},
		{ID: "2-1", Data: "{not json"},
		eventMessage("2-2", domain.StageEvent{AreaID: uuid.New()}),
	}

	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamAnalysisScore, "g").Return(nil)
	stream.On("ConsumeBatch", mock.Anything, domain.StreamAnalysisScore, "g", mock.AnythingOfType("string"), 10).
		Return(messages, nil).Once()
	stream.On("ConsumeBatch", mock.Anything, domain.StreamAnalysisScore, "g", mock.AnythingOfType("string"), 10).
		Return([]domain.StreamMessage{}, nil)
	stream.On("AckMessages", mock.Anything, domain.StreamAnalysisScore, "g", []string{"2-0", "2-1", "2-2"}).
		Return(nil).Once()

	w := analysis.NewScoringWorker(stream, handler, "g", 10, zap.NewNop())
	runUntil(t, w, 500*time.Millisecond)

	stream.AssertExpectations(t)
	handler.AssertNotCalled(t, "HandleStage", mock.Anything, mock.Anything)
}

func TestStageWorker_ConsumeErrorBacksOff(t *testing.T) {
	stream := &MockStreamRepository{}

	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamAnalysisExtract, "g").Return(nil)
	stream.On("ConsumeBatch", mock.Anything, domain.StreamAnalysisExtract, "g", mock.AnythingOfType("string"), 10).
		Return(nil, errors.New("connection reset"))

	w := analysis.NewExtractionWorker(stream, &MockStageHandler{}, "g", 10, zap.NewNop())
	runUntil(t, w, 300*time.Millisecond)

	// one read, then the backoff outlives the context
	stream.AssertNumberOfCalls(t, "ConsumeBatch", 1)
}
