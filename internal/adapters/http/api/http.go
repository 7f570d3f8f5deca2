// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/halleloo/fantasy-league/internal/app"
	"github.com/halleloo/fantasy-league/internal/domain/model"
	"github.com/halleloo/fantasy-league/internal/domain/rules"
	"github.com/halleloo/fantasy-league/internal/domain/scoring"
	"github.com/halleloo/fantasy-league/internal/domain/types"
)

// Dependencies bundles what the handlers need from the season
// service. Using an interface keeps the handler layer loosely coupled
// to the implementation in internal/app.
type Dependencies interface {
	Standings(ctx context.Context) ([]types.Standing, error)
	TeamView(ctx context.Context, id model.TeamID) (types.TeamView, error)
	Contestants(ctx context.Context) ([]types.ContestantView, error)
	ContestantEpisodes(ctx context.Context, id model.ContestantID) (types.ContestantEpisodes, error)
	EpisodeLog(ctx context.Context, episode int) ([]types.EpisodeLogEntry, error)

	SetDraft(ctx context.Context, id model.ContestantID, sel scoring.Selection) error
	ClearDraft(ctx context.Context, id model.ContestantID) error
	PreviewDeltas(ctx context.Context) []types.TeamDelta
	CommitEpisode(ctx context.Context, submissionID string) (types.CommitResult, error)
	CorrectEpisode(ctx context.Context, id model.ContestantID, episode int, counts rules.CodeCounts) error
	Eliminate(ctx context.Context, id model.ContestantID) error
	EnqueueRefresh(ctx context.Context, snap model.Snapshot) bool

	PendingEpisode() int
	Rules() rules.Table
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	leaderboardHandler *LeaderboardHandler
	teamsHandler       *TeamsHandler
	contestantsHandler *ContestantsHandler
	episodesHandler    *EpisodesHandler
	draftHandler       *DraftHandler
	refreshHandler     *RefreshHandler
}

// NewServer creates the API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLeaderboardLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLeaderboardLimit),
		teamsHandler:       NewTeamsHandler(deps),
		contestantsHandler: NewContestantsHandler(deps),
		episodesHandler:    NewEpisodesHandler(deps),
		draftHandler:       NewDraftHandler(deps),
		refreshHandler:     NewRefreshHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/teams/", MetricsMiddleware(s.teamsHandler.HandleGetTeam, "teams"))
	mux.HandleFunc("/contestants", MetricsMiddleware(s.contestantsHandler.HandleListContestants, "contestants"))
	mux.HandleFunc("/contestants/", MetricsMiddleware(s.contestantsHandler.HandleContestantSubroutes, "contestants"))
	mux.HandleFunc("/episodes/", MetricsMiddleware(s.episodesHandler.HandleEpisode, "episodes"))
	mux.HandleFunc("/draft/preview", MetricsMiddleware(s.draftHandler.HandlePreview, "draft_preview"))
	mux.HandleFunc("/draft/commit", MetricsMiddleware(s.draftHandler.HandleCommit, "draft_commit"))
	mux.HandleFunc("/draft/", MetricsMiddleware(s.draftHandler.HandleSelection, "draft_selection"))
	mux.HandleFunc("/refresh", MetricsMiddleware(s.refreshHandler.HandleRefresh, "refresh"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps season service error kinds to HTTP statuses.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, app.ErrUnknownContestant),
		errors.Is(err, app.ErrUnknownTeam):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	case errors.Is(err, app.ErrContestantEliminated),
		errors.Is(err, app.ErrAlreadyEliminated),
		errors.Is(err, app.ErrSeasonComplete),
		errors.Is(err, app.ErrEpisodeNotAired),
		errors.Is(err, app.ErrSeasonalCodeOutsideFinale),
		errors.Is(err, app.ErrInvalidRosterSize),
		errors.Is(err, app.ErrInvalidSnapshot),
		errors.Is(err, scoring.ErrUnknownCode),
		errors.Is(err, scoring.ErrSelectionKind),
		errors.Is(err, scoring.ErrNegativeCount):
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
