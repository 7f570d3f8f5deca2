package worker

import "github.com/halleloo/fantasy-league/pkg/logger"

// Option applies a configuration option to the RefreshWorker.
type Option func(*RefreshWorker)

// WithName names the worker for logging.
func WithName(name string) Option {
	return func(w *RefreshWorker) {
		if name != "" {
			w.name = name
			w.logger = logger.Get().Named(name)
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(w *RefreshWorker) {
		if l != nil {
			w.logger = l
		}
	}
}
