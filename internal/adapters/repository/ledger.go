// Package repository defines the per-contestant score ledger and its
// in-memory implementation.
package repository

import (
	"context"
	"iter"

	"github.com/halleloo/fantasy-league/internal/domain/model"
	"github.com/halleloo/fantasy-league/internal/domain/rules"
)

// Ledger provides read/write access to per-contestant episode scores.
//
// Entries are keyed by (contestant, episode). Writes overwrite an
// existing entry for the same episode unconditionally; callers that
// want commit-vs-correction semantics enforce them above this layer.
type Ledger interface {
	// Register adds a contestant to the ledger with no entries.
	// Registering an existing contestant is a no-op.
	Register(ctx context.Context, id model.ContestantID)

	// RecordEpisode stores codes and points for one contestant and
	// episode, overwriting any previous entry for that episode.
	// Returns ErrUnknownContestant for an unregistered contestant.
	RecordEpisode(ctx context.Context, id model.ContestantID, episode int, codes rules.CodeCounts, points int) error

	// Entry returns the recorded score for one episode.
	// Returns ErrNoEntry when the episode was never recorded.
	Entry(ctx context.Context, id model.ContestantID, episode int) (model.EpisodeScore, error)

	// Entries returns all recorded episodes for a contestant in
	// ascending episode order.
	Entries(ctx context.Context, id model.ContestantID) ([]model.EpisodeScore, error)

	// TotalThrough sums points over all recorded episodes up to and
	// including episodeLimit. A contestant with no recorded episodes
	// totals 0. Returns ErrUnknownContestant for an unregistered
	// contestant.
	TotalThrough(ctx context.Context, id model.ContestantID, episodeLimit int) (int, error)

	// EpisodesWithNonZero yields, in ascending order, the episode
	// numbers where the contestant's points are non-zero. The
	// sequence is lazy, finite and restartable; an unknown
	// contestant yields an empty sequence.
	EpisodesWithNonZero(id model.ContestantID) iter.Seq[int]

	// Count returns the number of registered contestants.
	Count(ctx context.Context) int

	// Reset drops all contestants and entries. Used when applying a
	// full season snapshot.
	Reset(ctx context.Context)
}
