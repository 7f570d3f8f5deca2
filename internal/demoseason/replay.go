package demoseason

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/halleloo/fantasy-league/pkg/logger"
)

// seedPollInterval paces the wait for the refresh worker to apply the
// seeded snapshot.
const seedPollInterval = 100 * time.Millisecond

// seedSeason posts the fixture as a fresh snapshot (no aired episodes)
// and waits until the refresh worker has applied it.
func seedSeason(ctx context.Context, config *Config, client *HTTPClient) error {
	logger.Get().Info(ctx, "seeding season snapshot",
		logger.String("season", SeasonName),
		logger.Int("contestants", len(Queens)),
		logger.Int("teams", len(Teams)))

	snapshot := map[string]interface{}{
		"season": map[string]interface{}{
			"name":               SeasonName,
			"total_episodes":     TotalEpisodes,
			"aired_episodes":     0,
			"pot_per_team_cents": PotPerTeamCents,
			"pot_split":          PotSplit[:],
		},
		"rules": DefaultRules,
	}

	contestants := make([]map[string]interface{}, 0, len(Queens))
	for _, q := range Queens {
		contestants = append(contestants, map[string]interface{}{
			"id":   q.ID,
			"name": q.Name,
		})
	}
	snapshot["contestants"] = contestants

	teams := make([]map[string]interface{}, 0, len(Teams))
	for _, t := range Teams {
		teams = append(teams, map[string]interface{}{
			"id":          t.ID,
			"name":        t.Name,
			"roster":      t.Roster[:],
			"winner_pick": t.WinnerPick,
		})
	}
	snapshot["teams"] = teams

	resp, err := client.Post(ctx, config.BaseURL+"/refresh", snapshot)
	if err != nil {
		return fmt.Errorf("failed to post snapshot: %w", err)
	}
	if _, err := readResponseBody(resp); err != nil {
		return fmt.Errorf("failed to read refresh response: %w", err)
	}
	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("snapshot rejected with status %d", resp.StatusCode)
	}

	return waitForSeed(ctx, config, client)
}

// waitForSeed polls /stats until the contestant count matches the
// fixture, meaning the queued snapshot has been applied.
func waitForSeed(ctx context.Context, config *Config, client *HTTPClient) error {
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("snapshot was not applied: %w", ctx.Err())
		case <-time.After(seedPollInterval):
		}

		resp, err := client.Get(ctx, config.BaseURL+"/stats")
		if err != nil {
			continue
		}
		var stats map[string]interface{}
		if err := decodeResponse(resp, &stats); err != nil {
			continue
		}
		if n, ok := stats["contestants"].(float64); ok && int(n) == len(Queens) {
			logger.Get().Info(ctx, "snapshot applied")
			return nil
		}
	}
}

// replayEpisode submits every queen's recorded codes for the episode
// as drafts, commits the episode, and applies any recorded
// eliminations.
func replayEpisode(ctx context.Context, config *Config, client *HTTPClient, episode int, stats *Stats) error {
	for _, q := range Queens {
		codes, ok := q.EpisodeCodes[episode]
		if !ok || codes == "" {
			continue
		}
		if err := submitDraft(ctx, config, client, q.ID, codes); err != nil {
			stats.Failures++
			return fmt.Errorf("draft for %s: %w", q.ID, err)
		}
		stats.DraftsSubmitted++
	}

	if config.Verbose {
		logPreview(ctx, config, client, episode)
	}

	if err := commitEpisode(ctx, config, client, episode, stats); err != nil {
		return err
	}

	for _, q := range Queens {
		if q.EliminatedEp != episode {
			continue
		}
		if err := eliminate(ctx, config, client, q.ID); err != nil {
			stats.Failures++
			return fmt.Errorf("eliminate %s: %w", q.ID, err)
		}
		stats.Eliminations++
		logger.Get().Info(ctx, "queen eliminated",
			logger.String("queen", q.Name),
			logger.Int("episode", episode))
	}
	return nil
}

// submitDraft translates a recorded code string into the draft request
// shape: toggles for one-shot codes, counts for accumulating ones.
func submitDraft(ctx context.Context, config *Config, client *HTTPClient, queenID, codes string) error {
	toggles := make(map[string]bool)
	counts := make(map[string]int)

	for _, code := range strings.Split(codes, ",") {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		if AccumulatingCodes[code] {
			counts[code]++
		} else {
			toggles[code] = true
		}
	}

	body := map[string]interface{}{
		"toggles": toggles,
		"counts":  counts,
	}
	resp, err := client.Put(ctx, config.BaseURL+"/draft/"+queenID, body)
	if err != nil {
		return err
	}
	if _, err := readResponseBody(resp); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("draft rejected with status %d", resp.StatusCode)
	}
	return nil
}

// logPreview fetches and logs the pending team deltas.
func logPreview(ctx context.Context, config *Config, client *HTTPClient, episode int) {
	resp, err := client.Get(ctx, config.BaseURL+"/draft/preview")
	if err != nil {
		logger.Get().Warn(ctx, "preview fetch failed", logger.Error(err))
		return
	}
	var preview struct {
		Episode int `json:"episode"`
		Deltas  []struct {
			TeamID string `json:"team_id"`
			Delta  int    `json:"delta"`
		} `json:"deltas"`
	}
	if err := decodeResponse(resp, &preview); err != nil {
		logger.Get().Warn(ctx, "preview decode failed", logger.Error(err))
		return
	}
	logger.Get().Info(ctx, "pending episode preview",
		logger.Int("episode", episode),
		logger.Int("teamsAffected", len(preview.Deltas)))
}

// commitEpisode commits the pending drafts and immediately retries
// with the same submission id to exercise the idempotency path.
func commitEpisode(ctx context.Context, config *Config, client *HTTPClient, episode int, stats *Stats) error {
	submissionID := uuid.New().String()
	body := map[string]string{"submission_id": submissionID}

	resp, err := client.Post(ctx, config.BaseURL+"/draft/commit", body)
	if err != nil {
		stats.Failures++
		return fmt.Errorf("commit episode %d: %w", episode, err)
	}
	var result CommitResponse
	if err := decodeResponse(resp, &result); err != nil {
		stats.Failures++
		return fmt.Errorf("commit episode %d: %w", episode, err)
	}
	if resp.StatusCode != http.StatusOK || result.Duplicate {
		stats.Failures++
		return fmt.Errorf("commit episode %d rejected with status %d", episode, resp.StatusCode)
	}
	if result.Episode != episode {
		stats.Failures++
		return fmt.Errorf("committed episode %d but expected %d", result.Episode, episode)
	}
	stats.EpisodesCommitted++

	// Retry with the same id; the service must report a duplicate
	// without re-applying the episode.
	retry, err := client.Post(ctx, config.BaseURL+"/draft/commit", body)
	if err != nil {
		return fmt.Errorf("commit retry episode %d: %w", episode, err)
	}
	var retryResult CommitResponse
	if err := decodeResponse(retry, &retryResult); err != nil {
		return fmt.Errorf("commit retry episode %d: %w", episode, err)
	}
	if !retryResult.Duplicate {
		stats.Failures++
		return fmt.Errorf("commit retry for episode %d was not flagged duplicate", episode)
	}
	stats.Duplicates++

	logger.Get().Info(ctx, "episode committed",
		logger.Int("episode", episode),
		logger.String("submissionID", submissionID))
	return nil
}

// eliminate marks a queen as eliminated.
func eliminate(ctx context.Context, config *Config, client *HTTPClient, queenID string) error {
	resp, err := client.Post(ctx, config.BaseURL+"/contestants/"+queenID+"/eliminate", struct{}{})
	if err != nil {
		return err
	}
	if _, err := readResponseBody(resp); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("elimination rejected with status %d", resp.StatusCode)
	}
	return nil
}
