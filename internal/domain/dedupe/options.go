package dedupe

// Option applies a configuration option to the deduper.
type Option func(*ringDeduper)

// WithMaxSize bounds the number of tracked ids. Zero or negative
// means unbounded.
func WithMaxSize(n int) Option {
	return func(d *ringDeduper) {
		d.maxSize = n
	}
}
