package detect

import (
	"log/slog"
	"time"

	"github.com/leapstack-labs/datasmell/pkg/smell"
)

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets how many passes run concurrently. Values below 2 run sequentially.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = max(n, 1)
	}
}

// WithSampleSize bounds the unexpected values kept per result.
// Negative values select smell.DefaultSampleSize.
func WithSampleSize(n int) Option {
	return func(e *Engine) {
		if n < 0 {
			n = smell.DefaultSampleSize
		}
		e.sampleSize = n
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock sets the clock used to stamp reports.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}
