package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
	"github.com/Chintnn/walkability-pathfinder/internal/domain/repository"
	"github.com/Chintnn/walkability-pathfinder/internal/worker"
	"go.uber.org/zap"
)

const (
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
	errorBackoff    = time.Second            // пауза после ошибки чтения
)

// StageHandler исполняет одну стадию пайплайна для события.
// Ошибка означает, что стадия провалила задачу; повторно событие не обрабатывается.
type StageHandler interface {
	HandleStage(ctx context.Context, event domain.StageEvent) error
}

// StageWorker читает события стадии из Redis Stream и передаёт их обработчику.
// Каждое прочитанное сообщение подтверждается: доставка at-least-once без повторов,
// идемпотентность обеспечивают чекпоинты прогресса задачи.
type StageWorker struct {
	*worker.BaseWorker
	stream     string
	streamRepo repository.StreamRepository
	handler    StageHandler
	batchSize  int
}

// NewStageWorker создает воркер стадии для указанного стрима
func NewStageWorker(
	name string,
	stream string,
	streamRepo repository.StreamRepository,
	handler StageHandler,
	consumerGroup string,
	batchSize int,
	logger *zap.Logger,
) *StageWorker {
	if batchSize <= 0 {
		batchSize = 1
	}

	return &StageWorker{
		BaseWorker: worker.NewBaseWorker(name, consumerGroup, logger),
		stream:     stream,
		streamRepo: streamRepo,
		handler:    handler,
		batchSize:  batchSize,
	}
}

// NewExtractionWorker - воркер стадии извлечения признаков
func NewExtractionWorker(
	streamRepo repository.StreamRepository,
	handler StageHandler,
	consumerGroup string,
	batchSize int,
	logger *zap.Logger,
) *StageWorker {
	return NewStageWorker("analysis-extraction", domain.StreamAnalysisExtract, streamRepo, handler, consumerGroup, batchSize, logger)
}

// NewScoringWorker - воркер стадии оценки и рекомендаций
func NewScoringWorker(
	streamRepo repository.StreamRepository,
	handler StageHandler,
	consumerGroup string,
	batchSize int,
	logger *zap.Logger,
) *StageWorker {
	return NewStageWorker("analysis-scoring", domain.StreamAnalysisScore, streamRepo, handler, consumerGroup, batchSize, logger)
}

// Start запускает цикл чтения до Stop или отмены контекста
func (w *StageWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting stage worker",
		zap.String("stream", w.stream),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()),
		zap.Int("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, w.stream, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				logger.Error("Failed to process batch", zap.Error(err))
				w.pause(ctx, errorBackoff)
				continue
			}

			if processed == 0 {
				w.pause(ctx, emptyQueueSleep)
			}
		}
	}
}

// pause ждёт d, прерываясь на Stop и отмене контекста
func (w *StageWorker) pause(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-w.StopChan():
	case <-ctx.Done():
	}
}

// processBatch читает пачку, обрабатывает события по одному и подтверждает все сообщения.
// Возвращает количество прочитанных сообщений.
func (w *StageWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(ctx, w.stream, w.ConsumerGroup(), w.ConsumerName(), w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	logger.Debug("Processing batch", zap.Int("message_count", len(messages)))

	ids := make([]string, 0, len(messages))
	for _, msg := range messages {
		ids = append(ids, msg.ID)

		event, err := parseMessage(msg)
		if err != nil {
			logger.Warn("Skipping malformed stage event",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			continue
		}

		w.handle(ctx, msg.ID, event)
	}

	if err := w.streamRepo.AckMessages(ctx, w.stream, w.ConsumerGroup(), ids); err != nil {
		// Сообщения останутся в PEL; повторная доставка безопасна
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	return len(messages), nil
}

func (w *StageWorker) handle(ctx context.Context, messageID string, event domain.StageEvent) {
	logger := w.Logger().With(
		zap.String("message_id", messageID),
		zap.String("task_id", event.TaskID.String()),
		zap.String("area_id", event.AreaID.String()),
	)

	start := time.Now()
	if err := w.handler.HandleStage(ctx, event); err != nil {
		logger.Warn("Stage failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return
	}
	logger.Info("Stage handled", zap.Duration("elapsed", time.Since(start)))
}

// parseMessage разбирает тело сообщения в StageEvent
func parseMessage(msg domain.StreamMessage) (domain.StageEvent, error) {
	var event domain.StageEvent
	if msg.Data == "" {
		return event, fmt.Errorf("missing 'data' field")
	}
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return event, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if !event.Valid() {
		return event, fmt.Errorf("event has no area_id or task_id")
	}
	return event, nil
}
