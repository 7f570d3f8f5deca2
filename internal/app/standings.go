package app

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/halleloo/fantasy-league/internal/domain/model"
	"github.com/halleloo/fantasy-league/internal/domain/types"
	"github.com/halleloo/fantasy-league/pkg/metrics"
)

// TeamTotal returns a team's season-to-date total: the sum of
// TotalThrough over exactly its five roster members, up to the last
// aired episode.
func (s *Service) TeamTotal(ctx context.Context, id model.TeamID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.teams {
		if t.ID == id {
			return s.teamTotalLocked(ctx, t)
		}
	}
	return 0, fmt.Errorf("app: team %s: %w", id, ErrUnknownTeam)
}

func (s *Service) teamTotalLocked(ctx context.Context, t model.Team) (int, error) {
	total := 0
	for _, cid := range t.Roster {
		pts, err := s.ledger.TotalThrough(ctx, cid, s.cfg.AiredEpisodes)
		if err != nil {
			return 0, fmt.Errorf("app: team %s member %s: %w", t.ID, cid, err)
		}
		total += pts
	}
	return total, nil
}

// Standings returns the ranked leaderboard: totals descending, ties
// broken by team name ascending, ranks assigned as consecutive
// 1-based positions. Pot shares are derived from the rank.
func (s *Service) Standings(ctx context.Context) ([]types.Standing, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStandingsLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.standingsLocked(ctx)
}

func (s *Service) standingsLocked(ctx context.Context) ([]types.Standing, error) {
	rows := make([]types.Standing, 0, len(s.teams))
	for _, t := range s.teams {
		total, err := s.teamTotalLocked(ctx, t)
		if err != nil {
			return nil, err
		}
		active := 0
		for _, cid := range t.Roster {
			if c, ok := s.contestants[cid]; ok && !c.Eliminated {
				active++
			}
		}
		rows = append(rows, types.Standing{
			TeamID:       string(t.ID),
			Name:         t.Name,
			Total:        total,
			ActiveRoster: active,
			WinnerPick:   string(t.WinnerPick),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].Name < rows[j].Name
	})

	potTotal := s.cfg.PotPerTeamCents * int64(len(s.teams))
	for i := range rows {
		rows[i].Rank = i + 1
		rows[i].PotShareCents = PotShare(rows[i].Rank, potTotal, s.cfg.PotSplit)
	}
	return rows, nil
}

// PotShare computes the payout in cents for a rank. Ranks 1..3 get
// their split fraction of the pot, rounded half away from zero once on
// the final amount; every other rank gets 0.
func PotShare(rank int, potTotalCents int64, split [3]float64) int64 {
	if rank < 1 || rank > len(split) {
		return 0
	}
	return int64(math.Round(float64(potTotalCents) * split[rank-1]))
}

// Teams lists the teams in their configured order.
func (s *Service) Teams(ctx context.Context) []model.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Team, len(s.teams))
	copy(out, s.teams)
	return out
}

// TeamView returns the detailed roster breakdown for one team,
// including its current preview delta.
func (s *Service) TeamView(ctx context.Context, id model.TeamID) (types.TeamView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.teams {
		if t.ID != id {
			continue
		}
		view := types.TeamView{
			TeamID:     string(t.ID),
			Name:       t.Name,
			WinnerPick: string(t.WinnerPick),
		}
		for _, cid := range t.Roster {
			c := s.contestants[cid]
			total, err := s.ledger.TotalThrough(ctx, cid, s.cfg.AiredEpisodes)
			if err != nil {
				return types.TeamView{}, fmt.Errorf("app: team %s member %s: %w", id, cid, err)
			}
			view.Total += total
			view.Roster = append(view.Roster, types.RosterMember{
				ContestantID: string(cid),
				Name:         c.Name,
				Total:        total,
				Eliminated:   c.Eliminated,
			})
		}
		view.PreviewDelta = s.teamDeltaLocked(t)
		return view, nil
	}
	return types.TeamView{}, fmt.Errorf("app: team %s: %w", id, ErrUnknownTeam)
}

// Contestants returns contestant summaries sorted by total descending,
// then name ascending.
func (s *Service) Contestants(ctx context.Context) ([]types.ContestantView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	draftedBy := make(map[model.ContestantID]int)
	for _, t := range s.teams {
		for _, cid := range t.Roster {
			draftedBy[cid]++
		}
	}

	out := make([]types.ContestantView, 0, len(s.contestants))
	for id, c := range s.contestants {
		total, err := s.ledger.TotalThrough(ctx, id, s.cfg.AiredEpisodes)
		if err != nil {
			return nil, fmt.Errorf("app: contestant %s: %w", id, err)
		}
		out = append(out, types.ContestantView{
			ContestantID:        string(id),
			Name:                c.Name,
			Total:               total,
			Eliminated:          c.Eliminated,
			EliminatedAtEpisode: c.EliminatedAtEpisode,
			DraftedBy:           draftedBy[id],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// ContestantEpisodes returns the per-episode breakdown and highlight
// episodes for one contestant.
func (s *Service) ContestantEpisodes(ctx context.Context, id model.ContestantID) (types.ContestantEpisodes, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contestants[id]
	if !ok {
		return types.ContestantEpisodes{}, fmt.Errorf("app: contestant %s: %w", id, ErrUnknownContestant)
	}
	entries, err := s.ledger.Entries(ctx, id)
	if err != nil {
		return types.ContestantEpisodes{}, fmt.Errorf("app: contestant %s: %w", id, err)
	}

	view := types.ContestantEpisodes{
		ContestantID: string(id),
		Name:         c.Name,
	}
	for _, e := range entries {
		if e.Episode > s.cfg.AiredEpisodes {
			continue
		}
		view.Total += e.Points
		view.Episodes = append(view.Episodes, types.EpisodeScoreView{
			Episode: e.Episode,
			Codes:   e.Codes.String(),
			Points:  e.Points,
		})
	}
	for ep := range s.ledger.EpisodesWithNonZero(id) {
		if ep <= s.cfg.AiredEpisodes {
			view.Highlights = append(view.Highlights, ep)
		}
	}
	return view, nil
}

// EpisodeLog returns the non-zero scorers of one aired episode,
// points descending, name ascending on ties.
func (s *Service) EpisodeLog(ctx context.Context, episode int) ([]types.EpisodeLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if episode < 1 || episode > s.cfg.AiredEpisodes {
		return nil, fmt.Errorf("app: episode %d: %w", episode, ErrEpisodeNotAired)
	}
	out := make([]types.EpisodeLogEntry, 0, len(s.contestants))
	for id, c := range s.contestants {
		e, err := s.ledger.Entry(ctx, id, episode)
		if err != nil {
			continue // no entry that episode
		}
		if e.Points == 0 {
			continue
		}
		out = append(out, types.EpisodeLogEntry{
			ContestantID: string(id),
			Name:         c.Name,
			Codes:        e.Codes.String(),
			Points:       e.Points,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}
