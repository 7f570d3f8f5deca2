// Package config defines service configuration and loading.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SeasonFile points at the YAML season snapshot loaded at
	// startup. Empty starts the service without a season; one must
	// then arrive via POST /refresh.
	SeasonFile string `koanf:"season_file"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// RefreshQueueSize bounds the snapshot refresh queue.
	RefreshQueueSize int `koanf:"refresh_queue_size"`

	// DedupeSize bounds the commit submission idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		MaxLeaderboardLimit: 100,
		RefreshQueueSize:    64,
		DedupeSize:          10_000,
	}
}
