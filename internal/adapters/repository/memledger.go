package repository

import (
	"context"
	"iter"
	"sort"
	"sync"
	"time"

	"github.com/halleloo/fantasy-league/internal/domain/model"
	"github.com/halleloo/fantasy-league/internal/domain/rules"
	"github.com/halleloo/fantasy-league/pkg/metrics"
)

// MemLedger is the in-memory Ledger implementation. All methods are
// safe for concurrent use; the episode map per contestant only grows
// (entries are overwritten, never deleted) except on Reset.
type MemLedger struct {
	mu      sync.RWMutex
	entries map[model.ContestantID]map[int]model.EpisodeScore
}

// NewMemLedger creates an empty in-memory ledger.
func NewMemLedger(opts ...Option) *MemLedger {
	l := &MemLedger{
		entries: make(map[model.ContestantID]map[int]model.EpisodeScore),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Register adds a contestant with no entries.
func (l *MemLedger) Register(ctx context.Context, id model.ContestantID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.entries[id]; !ok {
		l.entries[id] = make(map[int]model.EpisodeScore)
	}
}

// RecordEpisode stores codes and points, overwriting a previous entry
// for the same episode.
func (l *MemLedger) RecordEpisode(ctx context.Context, id model.ContestantID, episode int, codes rules.CodeCounts, points int) error {
	start := time.Now()
	defer func() {
		metrics.RecordLedgerWriteLatency(float64(time.Since(start).Milliseconds()))
	}()

	l.mu.Lock()
	defer l.mu.Unlock()

	eps, ok := l.entries[id]
	if !ok {
		metrics.RecordErrorByComponent("ledger", "unknown_contestant")
		return ErrUnknownContestant
	}
	eps[episode] = model.EpisodeScore{
		Episode: episode,
		Codes:   codes.Clone(),
		Points:  points,
	}
	return nil
}

// Entry returns one episode's recorded score.
func (l *MemLedger) Entry(ctx context.Context, id model.ContestantID, episode int) (model.EpisodeScore, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	eps, ok := l.entries[id]
	if !ok {
		return model.EpisodeScore{}, ErrUnknownContestant
	}
	e, ok := eps[episode]
	if !ok {
		return model.EpisodeScore{}, ErrNoEntry
	}
	e.Codes = e.Codes.Clone()
	return e, nil
}

// Entries returns all recorded episodes in ascending order.
func (l *MemLedger) Entries(ctx context.Context, id model.ContestantID) ([]model.EpisodeScore, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	eps, ok := l.entries[id]
	if !ok {
		return nil, ErrUnknownContestant
	}
	out := make([]model.EpisodeScore, 0, len(eps))
	for _, e := range eps {
		e.Codes = e.Codes.Clone()
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Episode < out[j].Episode })
	return out, nil
}

// TotalThrough sums points over recorded episodes <= episodeLimit.
func (l *MemLedger) TotalThrough(ctx context.Context, id model.ContestantID, episodeLimit int) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	eps, ok := l.entries[id]
	if !ok {
		return 0, ErrUnknownContestant
	}
	total := 0
	for ep, e := range eps {
		if ep <= episodeLimit {
			total += e.Points
		}
	}
	return total, nil
}

// EpisodesWithNonZero yields ascending episode numbers with non-zero
// points. Each range over the sequence takes a fresh snapshot, so the
// sequence is restartable.
func (l *MemLedger) EpisodesWithNonZero(id model.ContestantID) iter.Seq[int] {
	return func(yield func(int) bool) {
		l.mu.RLock()
		eps := l.entries[id]
		nums := make([]int, 0, len(eps))
		for ep, e := range eps {
			if e.Points != 0 {
				nums = append(nums, ep)
			}
		}
		l.mu.RUnlock()

		sort.Ints(nums)
		for _, ep := range nums {
			if !yield(ep) {
				return
			}
		}
	}
}

// Count returns the number of registered contestants.
func (l *MemLedger) Count(ctx context.Context) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Reset drops everything.
func (l *MemLedger) Reset(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = make(map[model.ContestantID]map[int]model.EpisodeScore)
}
