package queue

// Option applies a configuration option to the RefreshQueue.
type Option func(*RefreshQueue)

// WithCapacity bounds the number of pending snapshots.
func WithCapacity(n int) Option {
	return func(q *RefreshQueue) {
		if n > 0 {
			q.capacity = n
		}
	}
}
