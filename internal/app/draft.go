package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/halleloo/fantasy-league/internal/domain/model"
	"github.com/halleloo/fantasy-league/internal/domain/rules"
	"github.com/halleloo/fantasy-league/internal/domain/scoring"
	"github.com/halleloo/fantasy-league/internal/domain/types"
	"github.com/halleloo/fantasy-league/pkg/logger"
	"github.com/halleloo/fantasy-league/pkg/metrics"
)

// SetDraft stores the draft selection for an active contestant for the
// pending episode, replacing any previous selection. The ledger is not
// touched.
func (s *Service) SetDraft(ctx context.Context, id model.ContestantID, sel scoring.Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.AiredEpisodes >= s.cfg.TotalEpisodes {
		return fmt.Errorf("app: set draft: %w", ErrSeasonComplete)
	}
	if _, err := s.activeContestant(id); err != nil {
		return err
	}
	if err := s.validateCounts(sel.Counts(), s.cfg.AiredEpisodes+1); err != nil {
		return err
	}
	s.drafts[id] = sel
	return nil
}

// ClearDraft removes one contestant's draft selection. Clearing a
// missing draft is a no-op; drafts are never partially applied, so
// discarding one has no side effects.
func (s *Service) ClearDraft(ctx context.Context, id model.ContestantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contestants[id]; !ok {
		return fmt.Errorf("app: clear draft %s: %w", id, ErrUnknownContestant)
	}
	delete(s.drafts, id)
	return nil
}

// PreviewDeltas computes, per team, the points the pending drafts
// would add, without mutating the ledger. Teams with a zero delta are
// omitted; the rest are ordered delta descending, name ascending on
// ties.
func (s *Service) PreviewDeltas(ctx context.Context) []types.TeamDelta {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metrics.RecordPreview()
	out := make([]types.TeamDelta, 0, len(s.teams))
	for _, t := range s.teams {
		if delta := s.teamDeltaLocked(t); delta != 0 {
			out = append(out, types.TeamDelta{
				TeamID: string(t.ID),
				Name:   t.Name,
				Delta:  delta,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Delta != out[j].Delta {
			return out[i].Delta > out[j].Delta
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (s *Service) teamDeltaLocked(t model.Team) int {
	delta := 0
	for _, cid := range t.Roster {
		if sel, ok := s.drafts[cid]; ok {
			delta += sel.Points(s.table)
		}
	}
	return delta
}

// CommitEpisode atomically turns the pending drafts into the next
// episode's ledger entries, bumps the aired-episode counter by one and
// clears all drafts.
//
// submissionID makes retries idempotent: a resubmitted id returns the
// duplicate flag with the current standings instead of committing
// twice. All drafts are validated before the first write, so a
// failing commit leaves the ledger, the aired counter and the drafts
// untouched and unrecords the submission id for retry.
func (s *Service) CommitEpisode(ctx context.Context, submissionID string) (types.CommitResult, error) {
	if s.deduper.SeenAndRecord(ctx, submissionID) {
		metrics.RecordDuplicateSubmission()
		s.mu.RLock()
		defer s.mu.RUnlock()
		standings, err := s.standingsLocked(ctx)
		if err != nil {
			return types.CommitResult{}, err
		}
		return types.CommitResult{
			Episode:   s.cfg.AiredEpisodes,
			Duplicate: true,
			Standings: standings,
		}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	commit := func() (types.CommitResult, error) {
		if s.cfg.AiredEpisodes >= s.cfg.TotalEpisodes {
			return types.CommitResult{}, fmt.Errorf("app: commit: %w", ErrSeasonComplete)
		}
		episode := s.cfg.AiredEpisodes + 1

		// Validation pass: nothing is written unless every draft is
		// committable.
		for cid, sel := range s.drafts {
			c, ok := s.contestants[cid]
			if !ok {
				return types.CommitResult{}, fmt.Errorf("app: commit draft for %s: %w", cid, ErrUnknownContestant)
			}
			if c.Eliminated {
				return types.CommitResult{}, fmt.Errorf("app: commit draft for %s: %w", cid, ErrContestantEliminated)
			}
			if err := s.validateCounts(sel.Counts(), episode); err != nil {
				return types.CommitResult{}, err
			}
		}

		for cid, sel := range s.drafts {
			if sel.IsEmpty() {
				continue
			}
			counts := sel.Counts()
			pts := scoring.Points(counts, s.table)
			if err := s.ledger.RecordEpisode(ctx, cid, episode, counts, pts); err != nil {
				// Unreachable after the validation pass above.
				return types.CommitResult{}, fmt.Errorf("app: commit episode %d for %s: %w", episode, cid, err)
			}
		}

		s.cfg.AiredEpisodes = episode
		s.drafts = make(map[model.ContestantID]scoring.Selection)

		metrics.RecordCommit()
		metrics.UpdateAiredEpisodes(episode)
		s.logger.Info(ctx, "episode committed",
			logger.Int("episode", episode),
			logger.String("submission", submissionID),
		)

		standings, err := s.standingsLocked(ctx)
		if err != nil {
			return types.CommitResult{}, err
		}
		return types.CommitResult{Episode: episode, Standings: standings}, nil
	}

	result, err := commit()
	if err != nil {
		// Let the admin retry with the same submission id.
		s.deduper.Unrecord(ctx, submissionID)
		return types.CommitResult{}, err
	}
	return result, nil
}

// CorrectEpisode overwrites one contestant's codes for an already
// committed episode. This is the only overwrite path; commit itself
// never targets an existing episode. Points are recomputed from the
// corrected codes.
func (s *Service) CorrectEpisode(ctx context.Context, id model.ContestantID, episode int, counts rules.CodeCounts) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contestants[id]; !ok {
		return fmt.Errorf("app: correct %s: %w", id, ErrUnknownContestant)
	}
	if episode < 1 || episode > s.cfg.AiredEpisodes {
		return fmt.Errorf("app: correct episode %d: %w", episode, ErrEpisodeNotAired)
	}
	if err := s.validateCounts(counts, episode); err != nil {
		return err
	}

	pts := scoring.Points(counts, s.table)
	if err := s.ledger.RecordEpisode(ctx, id, episode, counts, pts); err != nil {
		return fmt.Errorf("app: correct episode %d for %s: %w", episode, id, err)
	}
	metrics.RecordCorrection()
	s.logger.Info(ctx, "episode corrected",
		logger.String("contestant", string(id)),
		logger.Int("episode", episode),
		logger.Int("points", pts),
	)
	return nil
}
