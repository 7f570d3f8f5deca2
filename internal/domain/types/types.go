// Package types contains the read shapes shared by the service and
// the HTTP API.
package types

// Standing is one row of the ranked leaderboard.
type Standing struct {
	Rank          int    `json:"rank"`
	TeamID        string `json:"team_id"`
	Name          string `json:"name"`
	Total         int    `json:"total"`
	PotShareCents int64  `json:"pot_share_cents"`
	ActiveRoster  int    `json:"active_roster"`
	WinnerPick    string `json:"winner_pick,omitempty"`
}

// RosterMember is one contestant's contribution inside a team view.
type RosterMember struct {
	ContestantID string `json:"contestant_id"`
	Name         string `json:"name"`
	Total        int    `json:"total"`
	Eliminated   bool   `json:"eliminated"`
}

// TeamView is the detailed view of one team.
type TeamView struct {
	TeamID       string         `json:"team_id"`
	Name         string         `json:"name"`
	Total        int            `json:"total"`
	Roster       []RosterMember `json:"roster"`
	WinnerPick   string         `json:"winner_pick,omitempty"`
	PreviewDelta int            `json:"preview_delta"`
}

// ContestantView is the summary view of one contestant.
type ContestantView struct {
	ContestantID        string `json:"contestant_id"`
	Name                string `json:"name"`
	Total               int    `json:"total"`
	Eliminated          bool   `json:"eliminated"`
	EliminatedAtEpisode int    `json:"eliminated_at_episode,omitempty"`
	DraftedBy           int    `json:"drafted_by"`
}

// EpisodeScoreView is one episode row in a contestant breakdown.
type EpisodeScoreView struct {
	Episode int    `json:"episode"`
	Codes   string `json:"codes"`
	Points  int    `json:"points"`
}

// ContestantEpisodes is the per-episode breakdown for one contestant.
type ContestantEpisodes struct {
	ContestantID string             `json:"contestant_id"`
	Name         string             `json:"name"`
	Total        int                `json:"total"`
	Episodes     []EpisodeScoreView `json:"episodes"`
	// Highlights lists the episodes with non-zero points, ascending.
	Highlights []int `json:"highlights"`
}

// EpisodeLogEntry is one non-zero scorer in an episode log.
type EpisodeLogEntry struct {
	ContestantID string `json:"contestant_id"`
	Name         string `json:"name"`
	Codes        string `json:"codes"`
	Points       int    `json:"points"`
}

// TeamDelta is one team's previewed point change for the pending
// episode.
type TeamDelta struct {
	TeamID string `json:"team_id"`
	Name   string `json:"name"`
	Delta  int    `json:"delta"`
}

// CommitResult reports the outcome of an episode commit.
type CommitResult struct {
	Episode   int        `json:"episode"`
	Duplicate bool       `json:"duplicate"`
	Standings []Standing `json:"standings"`
}
