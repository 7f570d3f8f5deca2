// Package worker runs the single consumer that applies queued season
// snapshots to the engine.
package worker

import (
	"context"
	"time"

	"github.com/halleloo/fantasy-league/internal/domain/model"
	"github.com/halleloo/fantasy-league/pkg/logger"
	"github.com/halleloo/fantasy-league/pkg/metrics"
)

const shutdownTimeout = 5 * time.Second

// Applier applies a full season snapshot, replacing all derived state.
type Applier interface {
	ApplySnapshot(ctx context.Context, s model.Snapshot) error
}

// Queue defines how the worker receives snapshots.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.Snapshot
}

// RefreshWorker consumes snapshots one at a time, serializing
// full-state refreshes.
type RefreshWorker struct {
	queue   Queue
	applier Applier
	name    string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// New creates a refresh worker with configuration options.
func New(queue Queue, applier Applier, opts ...Option) *RefreshWorker {
	w := &RefreshWorker{
		queue:    queue,
		applier:  applier,
		name:     "refresh",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("refresh"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run consumes the queue until ctx is canceled, the queue closes, or
// Shutdown is called.
func (w *RefreshWorker) Run(ctx context.Context) {
	defer close(w.done)

	snapshots := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case s, ok := <-snapshots:
			if !ok {
				return
			}
			w.apply(ctx, s)
		}
	}
}

func (w *RefreshWorker) apply(ctx context.Context, s model.Snapshot) {
	start := time.Now()
	if err := w.applier.ApplySnapshot(ctx, s); err != nil {
		metrics.RecordErrorByComponent("refresh_worker", "apply_failed")
		w.logger.Error(ctx, "snapshot apply failed",
			logger.String("season", s.Config.Name),
			logger.Error(err),
		)
		return
	}
	metrics.RecordRefreshApplied()
	w.logger.Info(ctx, "snapshot applied",
		logger.String("season", s.Config.Name),
		logger.Int("contestants", len(s.Contestants)),
		logger.Int("teams", len(s.Teams)),
		logger.Int("durationMs", int(time.Since(start).Milliseconds())),
	)
}

// Shutdown stops the worker, waiting briefly for the in-flight
// snapshot to finish.
func (w *RefreshWorker) Shutdown(ctx context.Context) error {
	select {
	case <-w.shutdown:
		// already shut down
	default:
		close(w.shutdown)
	}

	select {
	case <-w.done:
		return nil
	case <-time.After(shutdownTimeout):
		return ErrShutdownTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}
