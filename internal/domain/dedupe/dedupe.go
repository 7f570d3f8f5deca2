// Package dedupe tracks commit submission ids for idempotency.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Deduper records seen submission ids so a retried commit is answered
// as a duplicate instead of being applied twice.
type Deduper interface {
	// SeenAndRecord atomically checks whether id was seen and records
	// it if not. Returns true if id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord removes an id from the seen set. Used when a commit
	// was recorded as seen but failed to apply, so the admin can
	// resubmit with the same id.
	Unrecord(ctx context.Context, id string)

	// Size returns the current number of tracked ids.
	Size() int64
}

// ringDeduper implements Deduper with a bounded set and FIFO eviction:
// when the cache is full the oldest id is forgotten. With maxSize <= 0
// the set is unbounded.
type ringDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string // FIFO insertion order; unused when unbounded
	maxSize int
	size    atomic.Int64
}

const defaultMaxSize = 10_000

// New creates a deduper with configuration options.
func New(opts ...Option) Deduper {
	d := &ringDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{})
	if d.maxSize > 0 {
		d.order = make([]string, 0, d.maxSize)
	}
	return d
}

// SeenAndRecord atomically checks and records id.
func (d *ringDeduper) SeenAndRecord(ctx context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}
	if d.maxSize > 0 && len(d.seen) >= d.maxSize {
		oldest := d.order[0]
		d.order = d.order[1:]
		delete(d.seen, oldest)
		d.size.Add(-1)
	}
	d.seen[id] = struct{}{}
	if d.maxSize > 0 {
		d.order = append(d.order, id)
	}
	d.size.Add(1)
	return false
}

// Unrecord removes id from the seen set.
func (d *ringDeduper) Unrecord(ctx context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; !ok {
		return
	}
	delete(d.seen, id)
	d.size.Add(-1)
	for i, v := range d.order {
		if v == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Size returns the number of tracked ids.
func (d *ringDeduper) Size() int64 {
	return d.size.Load()
}
