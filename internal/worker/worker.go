package worker

import (
	"context"
)

// Worker - долгоживущий процесс воркера (стадия пайплайна или sweeper).
// Start блокирует до Stop или отмены ctx; Stop можно вызывать из другой горутины.
type Worker interface {
	Start(ctx context.Context) error
	Stop() error
	Name() string
}
