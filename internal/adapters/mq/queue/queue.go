// Package queue provides the bounded in-memory queue of season
// snapshot refresh events.
//
// The persistence collaborator (or an admin via POST /refresh) hands
// the engine complete season snapshots; queuing them and applying them
// from a single consumer keeps snapshot application serialized with
// respect to itself.
package queue

import (
	"context"
	"sync"

	"github.com/halleloo/fantasy-league/internal/domain/model"
	"github.com/halleloo/fantasy-league/pkg/metrics"
)

const defaultCapacity = 64

// Queue provides non-blocking enqueue and channel-based dequeue of
// snapshots.
type Queue interface {
	// Enqueue adds a snapshot. Returns false when the queue is full
	// or closed (backpressure; the caller reports it upstream).
	Enqueue(ctx context.Context, s model.Snapshot) bool

	// Dequeue returns a channel receiving snapshots in order. The
	// channel closes when the queue closes.
	Dequeue(ctx context.Context) <-chan model.Snapshot

	// Len returns the number of queued snapshots.
	Len(ctx context.Context) int

	// Close stops the queue; no further enqueues succeed.
	Close() error

	// IsClosed reports whether the queue has been closed.
	IsClosed() bool
}

// RefreshQueue implements Queue over a buffered channel.
type RefreshQueue struct {
	snapshots chan model.Snapshot
	capacity  int
	mu        sync.RWMutex
	closed    bool
}

// New creates a refresh queue with configuration options.
func New(opts ...Option) *RefreshQueue {
	q := &RefreshQueue{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.snapshots = make(chan model.Snapshot, q.capacity)
	metrics.UpdateRefreshQueueSize(0)
	return q
}

// Enqueue adds a snapshot without blocking.
func (q *RefreshQueue) Enqueue(ctx context.Context, s model.Snapshot) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordErrorByComponent("refresh_queue", "closed")
		return false
	}
	select {
	case q.snapshots <- s:
		metrics.UpdateRefreshQueueSize(len(q.snapshots))
		return true
	case <-ctx.Done():
		metrics.RecordErrorByComponent("refresh_queue", "context_cancelled")
		return false
	default:
		metrics.RecordErrorByComponent("refresh_queue", "full")
		return false
	}
}

// Dequeue returns the receive channel for queued snapshots.
func (q *RefreshQueue) Dequeue(ctx context.Context) <-chan model.Snapshot {
	out := make(chan model.Snapshot)
	go func() {
		defer close(out)
		for s := range q.snapshots {
			select {
			case out <- s:
				metrics.UpdateRefreshQueueSize(len(q.snapshots))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the number of queued snapshots.
func (q *RefreshQueue) Len(ctx context.Context) int {
	return len(q.snapshots)
}

// Close stops the queue.
func (q *RefreshQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.snapshots)
	q.closed = true
	return nil
}

// IsClosed reports whether the queue has been closed.
func (q *RefreshQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
