package demoseason

import "time"

// Config holds configuration for the season replay.
type Config struct {
	BaseURL  string        // Base URL of the service
	Episodes int           // Number of recorded episodes to replay
	Timeout  time.Duration // HTTP request timeout
	LogFile  string        // Log file for replay output
	Verbose  bool          // Enable verbose logging
}

// Rule is the wire shape of one scoring rule.
type Rule struct {
	Code        string `json:"code"`
	Points      int    `json:"points"`
	Label       string `json:"label"`
	Accumulates bool   `json:"accumulates"`
	Seasonal    bool   `json:"seasonal"`
}

// Standing is one leaderboard row as returned by the service.
type Standing struct {
	Rank          int    `json:"rank"`
	TeamID        string `json:"team_id"`
	Name          string `json:"name"`
	Total         int    `json:"total"`
	PotShareCents int64  `json:"pot_share_cents"`
}

// CommitResponse is the response from a draft commit.
type CommitResponse struct {
	Episode   int        `json:"episode"`
	Duplicate bool       `json:"duplicate"`
	Standings []Standing `json:"standings"`
}

// Stats holds replay statistics.
type Stats struct {
	EpisodesCommitted int
	DraftsSubmitted   int
	Eliminations      int
	Duplicates        int
	Failures          int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
