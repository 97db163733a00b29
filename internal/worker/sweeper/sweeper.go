package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/Chintnn/walkability-pathfinder/internal/worker"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StaleTaskExpirer проваливает задачи, не продвигавшиеся дольше timeout
type StaleTaskExpirer interface {
	ExpireStale(ctx context.Context, timeout time.Duration) (int64, error)
}

// Sweeper по расписанию переводит зависшие задачи в failed с ANALYSIS_TIMEOUT.
// Так клиент не опрашивает вечно задачу, чья стадия потеряла сообщение или упала вместе с процессом.
type Sweeper struct {
	*worker.BaseWorker
	expirer  StaleTaskExpirer
	schedule string
	timeout  time.Duration
}

// NewSweeper создает sweeper; schedule - cron-выражение или дескриптор вида "@every 1m"
func NewSweeper(expirer StaleTaskExpirer, schedule string, timeout time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		BaseWorker: worker.NewBaseWorker("stale-task-sweeper", "", logger),
		expirer:    expirer,
		schedule:   schedule,
		timeout:    timeout,
	}
}

// Start регистрирует задание и блокирует до Stop или отмены контекста
func (s *Sweeper) Start(ctx context.Context) error {
	logger := s.Logger()

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(s.schedule, func() { s.Sweep(ctx) }); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.schedule, err)
	}

	logger.Info("Starting sweeper",
		zap.String("schedule", s.schedule),
		zap.Duration("stale_timeout", s.timeout))
	c.Start()

	var err error
	select {
	case <-s.StopChan():
	case <-ctx.Done():
		err = ctx.Err()
	}

	// дожидаемся текущего прохода
	<-c.Stop().Done()
	logger.Info("Sweeper stopped")
	return err
}

// Sweep выполняет один проход
func (s *Sweeper) Sweep(ctx context.Context) {
	expired, err := s.expirer.ExpireStale(ctx, s.timeout)
	if err != nil {
		s.Logger().Error("Failed to expire stale tasks", zap.Error(err))
		return
	}
	if expired > 0 {
		s.Logger().Warn("Expired stale analysis tasks", zap.Int64("count", expired))
	}
}
