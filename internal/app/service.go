// Package app provides the season service: the single aggregate that
// owns the rule table, contestants, teams, ledger and draft
// selections, and implements the dependencies required by the HTTP
// API.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/halleloo/fantasy-league/internal/adapters/mq/queue"
	"github.com/halleloo/fantasy-league/internal/adapters/mq/worker"
	"github.com/halleloo/fantasy-league/internal/adapters/repository"
	"github.com/halleloo/fantasy-league/internal/domain/dedupe"
	"github.com/halleloo/fantasy-league/internal/domain/model"
	"github.com/halleloo/fantasy-league/internal/domain/rules"
	"github.com/halleloo/fantasy-league/internal/domain/scoring"
	"github.com/halleloo/fantasy-league/pkg/logger"
	"github.com/halleloo/fantasy-league/pkg/metrics"
)

// Service holds one season's state. Reads take the read lock;
// mutations (drafts, commit, correction, elimination, snapshot apply)
// take the write lock, so the engine is single-writer as required.
type Service struct {
	mu sync.RWMutex

	ledger       repository.Ledger
	deduper      dedupe.Deduper
	refreshQueue queue.Queue
	refresher    *worker.RefreshWorker

	table       rules.Table
	cfg         model.SeasonConfig
	contestants map[model.ContestantID]*model.Contestant
	teams       []model.Team
	drafts      map[model.ContestantID]scoring.Selection

	// Configuration
	dedupeSize    int
	queueCapacity int

	started bool
	logger  logger.Logger
}

// New constructs a Service with default configuration. The season
// itself is loaded with ApplySnapshot after Start.
func New(opts ...Option) *Service {
	s := &Service{
		dedupeSize:    10_000,
		queueCapacity: 64,
		contestants:   make(map[model.ContestantID]*model.Contestant),
		drafts:        make(map[model.ContestantID]scoring.Selection),
		table:         rules.Table{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the ledger, deduper, refresh queue and refresh
// worker.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.ledger = repository.NewMemLedger()
	s.deduper = dedupe.New(dedupe.WithMaxSize(s.dedupeSize))
	s.refreshQueue = queue.New(queue.WithCapacity(s.queueCapacity))
	s.refresher = worker.New(s.refreshQueue, s, worker.WithName("refresh"))
	go s.refresher.Run(ctx)

	s.started = true
	s.logger.Info(ctx, "season service started",
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("refreshQueueCapacity", s.queueCapacity),
	)
	return nil
}

// Stop shuts down the refresh pipeline.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	if s.refreshQueue != nil {
		if q, ok := s.refreshQueue.(*queue.RefreshQueue); ok {
			_ = q.Close()
		}
	}
	if s.refresher != nil {
		if err := s.refresher.Shutdown(ctx); err != nil {
			s.logger.Warn(ctx, "refresh worker shutdown", logger.Error(err))
		}
	}
	s.started = false
	s.logger.Info(ctx, "season service stopped")
}

// ApplySnapshot validates and applies a complete season snapshot,
// replacing all state and recomputing derived values from scratch.
// On validation failure nothing changes.
func (s *Service) ApplySnapshot(ctx context.Context, snap model.Snapshot) error {
	table := rules.NewTable(snap.Rules...)
	if len(table) == 0 {
		return fmt.Errorf("app: %w: empty rule table", ErrInvalidSnapshot)
	}
	if snap.Config.TotalEpisodes < 1 {
		return fmt.Errorf("app: %w: total episodes %d", ErrInvalidSnapshot, snap.Config.TotalEpisodes)
	}
	if snap.Config.AiredEpisodes < 0 || snap.Config.AiredEpisodes > snap.Config.TotalEpisodes {
		return fmt.Errorf("app: %w: aired episodes %d of %d", ErrInvalidSnapshot, snap.Config.AiredEpisodes, snap.Config.TotalEpisodes)
	}

	contestants := make(map[model.ContestantID]*model.Contestant, len(snap.Contestants))
	for i := range snap.Contestants {
		cs := snap.Contestants[i]
		if cs.ID == "" {
			return fmt.Errorf("app: %w: contestant with empty id", ErrInvalidSnapshot)
		}
		if _, dup := contestants[cs.ID]; dup {
			return fmt.Errorf("app: %w: duplicate contestant %s", ErrInvalidSnapshot, cs.ID)
		}
		c := cs.Contestant
		contestants[cs.ID] = &c
	}

	for _, t := range snap.Teams {
		if len(t.Roster) != model.RosterSize {
			return fmt.Errorf("app: %w: team %s has %d contestants", ErrInvalidRosterSize, t.ID, len(t.Roster))
		}
		for _, cid := range t.Roster {
			if _, ok := contestants[cid]; !ok {
				return fmt.Errorf("app: %w: team %s roster references %s", ErrUnknownContestant, t.ID, cid)
			}
		}
		if t.WinnerPick != "" {
			if _, ok := contestants[t.WinnerPick]; !ok {
				return fmt.Errorf("app: %w: team %s winner pick %s", ErrUnknownContestant, t.ID, t.WinnerPick)
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.Reset(ctx)
	s.table = table
	s.cfg = snap.Config
	s.contestants = contestants
	s.teams = append([]model.Team(nil), snap.Teams...)
	s.drafts = make(map[model.ContestantID]scoring.Selection)

	for _, cs := range snap.Contestants {
		s.ledger.Register(ctx, cs.ID)
		for episode, codeStr := range cs.EpisodeCodes {
			counts := rules.ParseCodes(codeStr, s.table)
			pts := scoring.Points(counts, s.table)
			if err := s.ledger.RecordEpisode(ctx, cs.ID, episode, counts, pts); err != nil {
				return fmt.Errorf("app: record episode %d for %s: %w", episode, cs.ID, err)
			}
		}
	}

	metrics.UpdateTotalTeams(len(s.teams))
	metrics.UpdateTotalContestants(len(s.contestants))
	metrics.UpdateAiredEpisodes(s.cfg.AiredEpisodes)
	return nil
}

// EnqueueRefresh queues a snapshot for serialized application by the
// refresh worker. Returns false on backpressure.
func (s *Service) EnqueueRefresh(ctx context.Context, snap model.Snapshot) bool {
	ok := s.refreshQueue.Enqueue(ctx, snap)
	if ok {
		metrics.RecordRefreshEnqueued()
	}
	return ok
}

// PendingEpisode returns the episode number the current drafts target:
// the one immediately after the last aired episode.
func (s *Service) PendingEpisode() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.AiredEpisodes + 1
}

// Config returns the season configuration.
func (s *Service) Config() model.SeasonConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Rules returns the scoring rule table.
func (s *Service) Rules() rules.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// Eliminate performs the one-way ACTIVE -> ELIMINATED transition,
// recording the last aired episode as the elimination point. The
// contestant's ledger is untouched and keeps contributing to team
// totals; its draft selection, if any, is discarded.
func (s *Service) Eliminate(ctx context.Context, id model.ContestantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contestants[id]
	if !ok {
		return fmt.Errorf("app: eliminate %s: %w", id, ErrUnknownContestant)
	}
	if c.Eliminated {
		return fmt.Errorf("app: eliminate %s: %w", id, ErrAlreadyEliminated)
	}
	c.Eliminated = true
	c.EliminatedAtEpisode = s.cfg.AiredEpisodes
	delete(s.drafts, id)

	metrics.RecordElimination()
	s.logger.Info(ctx, "contestant eliminated",
		logger.String("contestant", string(id)),
		logger.Int("episode", c.EliminatedAtEpisode),
	)
	return nil
}

// Stats returns service statistics for monitoring.
func (s *Service) Stats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":        s.started,
		"season":         s.cfg.Name,
		"teams":          len(s.teams),
		"contestants":    len(s.contestants),
		"airedEpisodes":  s.cfg.AiredEpisodes,
		"totalEpisodes":  s.cfg.TotalEpisodes,
		"pendingDrafts":  len(s.drafts),
		"trackedcommits": int(s.deduper.Size()),
	}
	if s.started {
		stats["refreshQueueLength"] = s.refreshQueue.Len(ctx)
	}
	return stats
}

// activeContestant returns the contestant when it exists and has not
// been eliminated. Callers hold at least the read lock.
func (s *Service) activeContestant(id model.ContestantID) (*model.Contestant, error) {
	c, ok := s.contestants[id]
	if !ok {
		return nil, fmt.Errorf("app: contestant %s: %w", id, ErrUnknownContestant)
	}
	if c.Eliminated {
		return nil, fmt.Errorf("app: contestant %s: %w", id, ErrContestantEliminated)
	}
	return c, nil
}

// validateCounts rejects seasonal codes outside the finale episode.
// Callers hold at least the read lock.
func (s *Service) validateCounts(counts rules.CodeCounts, episode int) error {
	for code, n := range counts {
		if n <= 0 {
			continue
		}
		rule, ok := s.table.Lookup(code)
		if !ok {
			// Parser policy: unknown codes were dropped upstream;
			// anything left here came from a constructed selection.
			return fmt.Errorf("app: code %s: %w", code, scoring.ErrUnknownCode)
		}
		if rule.Seasonal && episode != s.cfg.TotalEpisodes {
			return fmt.Errorf("app: code %s on episode %d: %w", code, episode, ErrSeasonalCodeOutsideFinale)
		}
	}
	return nil
}
