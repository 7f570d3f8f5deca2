package repository

import "github.com/halleloo/fantasy-league/internal/domain/model"

// Option applies a configuration option to the MemLedger.
type Option func(*MemLedger)

// WithContestants pre-registers contestants at construction.
func WithContestants(ids ...model.ContestantID) Option {
	return func(l *MemLedger) {
		for _, id := range ids {
			if _, ok := l.entries[id]; !ok {
				l.entries[id] = make(map[int]model.EpisodeScore)
			}
		}
	}
}
