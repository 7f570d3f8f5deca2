package demoseason

import (
	"context"
	"fmt"
	"math"

	"github.com/halleloo/fantasy-league/pkg/logger"
)

// verifyLeaderboard fetches the final standings and checks them
// against the totals computed locally from the recorded per-queen
// points.
func verifyLeaderboard(ctx context.Context, config *Config, client *HTTPClient, throughEpisode int) ([]Standing, error) {
	logger.Get().Info(ctx, "verifying leaderboard")

	resp, err := client.Get(ctx, config.BaseURL+"/leaderboard")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}
	var standings []Standing
	if err := decodeResponse(resp, &standings); err != nil {
		return nil, err
	}
	if len(standings) != len(Teams) {
		return nil, fmt.Errorf("leaderboard has %d teams, expected %d", len(standings), len(Teams))
	}

	expected := ExpectedTeamTotals(throughEpisode)
	for _, s := range standings {
		want, ok := expected[s.TeamID]
		if !ok {
			return nil, fmt.Errorf("leaderboard contains unknown team %s", s.TeamID)
		}
		if s.Total != want {
			return nil, fmt.Errorf("team %s total %d, expected %d", s.TeamID, s.Total, want)
		}
	}

	// Ranks must be contiguous and ordered by total descending with
	// ties broken by name.
	for i := 1; i < len(standings); i++ {
		if standings[i].Rank != standings[i-1].Rank+1 {
			return nil, fmt.Errorf("ranks not contiguous at position %d", i)
		}
		prev, cur := standings[i-1], standings[i]
		if cur.Total > prev.Total {
			return nil, fmt.Errorf("leaderboard not sorted: %s above %s", prev.TeamID, cur.TeamID)
		}
		if cur.Total == prev.Total && cur.Name < prev.Name {
			return nil, fmt.Errorf("tie between %s and %s not broken by name", prev.TeamID, cur.TeamID)
		}
	}

	if err := verifyPotShares(standings); err != nil {
		return nil, err
	}

	logger.Get().Info(ctx, "leaderboard verified",
		logger.Int("teams", len(standings)),
		logger.Int("throughEpisode", throughEpisode))
	return standings, nil
}

// verifyPotShares checks the prize split against the fixture pot.
func verifyPotShares(standings []Standing) error {
	totalPot := int64(len(Teams)) * PotPerTeamCents
	for _, s := range standings {
		var want int64
		if s.Rank >= 1 && s.Rank <= len(PotSplit) {
			want = int64(math.Round(float64(totalPot) * PotSplit[s.Rank-1]))
		}
		if s.PotShareCents != want {
			return fmt.Errorf("team %s pot share %d cents, expected %d", s.TeamID, s.PotShareCents, want)
		}
	}
	return nil
}

// displayStandings logs the final standings.
func displayStandings(ctx context.Context, standings []Standing, verbose bool) {
	top := len(standings)
	if !verbose && top > 5 {
		top = 5
	}
	for _, s := range standings[:top] {
		logger.Get().Info(ctx, "standing",
			logger.Int("rank", s.Rank),
			logger.String("team", s.Name),
			logger.Int("total", s.Total),
			logger.Any("potShareCents", s.PotShareCents))
	}
}
