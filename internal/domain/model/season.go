// Package model contains domain models passed between layers.
package model

import "github.com/halleloo/fantasy-league/internal/domain/rules"

// ContestantID identifies a show contestant.
type ContestantID string

// TeamID identifies a league team (one human player's entry).
type TeamID string

// RosterSize is the fixed number of contestants every team drafts.
const RosterSize = 5

// Contestant is one competitor on the show. Elimination state is
// monotonic: once set it is never reverted.
type Contestant struct {
	ID         ContestantID
	Name       string
	Eliminated bool
	// EliminatedAtEpisode holds the episode after which the
	// contestant left; zero when still active.
	EliminatedAtEpisode int
}

// Team is a league entrant with a locked roster of exactly RosterSize
// contestant references. Rosters reference contestants by id; a
// contestant may appear on many rosters.
type Team struct {
	ID     TeamID
	Name   string
	Roster []ContestantID
	// WinnerPick is the optional contestant this team nominated as
	// the season winner; empty when none.
	WinnerPick ContestantID
}

// SeasonConfig holds the per-season parameters.
type SeasonConfig struct {
	Name          string
	TotalEpisodes int
	// AiredEpisodes increases by exactly one on every committed
	// episode and never decreases.
	AiredEpisodes int
	// PotPerTeamCents is the buy-in per team; the pot total is this
	// times the team count.
	PotPerTeamCents int64
	// PotSplit is the ordered fraction of the pot paid to ranks 1..3.
	// The fractions sum to 1.0.
	PotSplit [3]float64
}

// EpisodeScore is one contestant's committed record for one episode.
type EpisodeScore struct {
	Episode int
	Codes   rules.CodeCounts
	Points  int
}

// ContestantState is a contestant plus its full ledger, as carried by
// a season snapshot.
type ContestantState struct {
	Contestant
	// EpisodeCodes maps episode number to the raw comma-separated
	// code string. Points are derived from codes at load time; the
	// code string is authoritative.
	EpisodeCodes map[int]string
}

// Snapshot is a complete season state as provided by the external
// persistence collaborator. The engine accepts a snapshot both at
// startup and as a full-state refresh event, recomputing every derived
// value from scratch.
type Snapshot struct {
	Rules       []rules.Rule
	Config      SeasonConfig
	Contestants []ContestantState
	Teams       []Team
}
