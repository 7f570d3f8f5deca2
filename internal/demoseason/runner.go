package demoseason

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/halleloo/fantasy-league/pkg/logger"
)

// Run executes the complete season replay.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting season replay",
		logger.String("baseURL", config.BaseURL),
		logger.Int("episodes", config.Episodes),
		logger.String("timeout", config.Timeout.String()),
		logger.Any("verbose", config.Verbose))

	client := newHTTPClient(config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config, client); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Seed the fixture season
	if err := seedSeason(ctx, config, client); err != nil {
		return fmt.Errorf("season seeding failed: %w", err)
	}

	// Step 3: Replay each recorded episode
	for episode := 1; episode <= config.Episodes; episode++ {
		if err := replayEpisode(ctx, config, client, episode, stats); err != nil {
			return fmt.Errorf("episode %d replay failed: %w", episode, err)
		}
	}

	// Step 4: Verify the final leaderboard against recorded points
	standings, err := verifyLeaderboard(ctx, config, client, config.Episodes)
	if err != nil {
		return fmt.Errorf("leaderboard verification failed: %w", err)
	}
	displayStandings(ctx, standings, config.Verbose)

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "replay completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config, client *HTTPClient) error {
	logger.Get().Info(ctx, "checking service health")

	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if _, err := readResponseBody(resp); err != nil {
		return fmt.Errorf("failed to read health response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// displayFinalStats prints the final replay statistics.
func displayFinalStats(stats *Stats) {
	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("episodesCommitted", stats.EpisodesCommitted),
		logger.Int("draftsSubmitted", stats.DraftsSubmitted),
		logger.Int("eliminations", stats.Eliminations),
		logger.Int("duplicateRetries", stats.Duplicates),
		logger.Int("failures", stats.Failures),
		logger.String("duration", stats.Duration.String()))
}
