package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/halleloo/fantasy-league/internal/domain/model"
	"github.com/halleloo/fantasy-league/internal/domain/rules"
	"github.com/halleloo/fantasy-league/internal/domain/types"
)

// EpisodesDependencies defines the interface for episode operations.
type EpisodesDependencies interface {
	EpisodeLog(ctx context.Context, episode int) ([]types.EpisodeLogEntry, error)
	CorrectEpisode(ctx context.Context, id model.ContestantID, episode int, counts rules.CodeCounts) error
	Rules() rules.Table
}

// EpisodesHandler handles episode log and correction requests.
type EpisodesHandler struct {
	deps EpisodesDependencies
}

// NewEpisodesHandler creates a new episodes handler.
func NewEpisodesHandler(deps EpisodesDependencies) *EpisodesHandler {
	return &EpisodesHandler{deps: deps}
}

// correctionRequest corrects one contestant's committed episode.
// Codes is the comma-separated code string; unknown codes are dropped
// by the parser, so an all-unknown string zeroes the entry.
type correctionRequest struct {
	ContestantID string `json:"contestant_id"`
	Codes        string `json:"codes"`
}

type correctionResponse struct {
	Status string `json:"status"`
}

// HandleEpisode handles GET /episodes/{n} and
// POST /episodes/{n}/corrections.
func (h *EpisodesHandler) HandleEpisode(w http.ResponseWriter, r *http.Request) {
	const op = "api.episode"
	rest := strings.TrimPrefix(r.URL.Path, "/episodes/")
	parts := strings.Split(rest, "/")

	episode, err := strconv.Atoi(parts[0])
	if err != nil || episode < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		log, err := h.deps.EpisodeLog(r.Context(), episode)
		if err != nil {
			writeServiceError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, log)
	case len(parts) == 2 && parts[1] == "corrections" && r.Method == http.MethodPost:
		var req correctionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if strings.TrimSpace(req.ContestantID) == "" {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		counts := rules.ParseCodes(req.Codes, h.deps.Rules())
		if err := h.deps.CorrectEpisode(r.Context(), model.ContestantID(req.ContestantID), episode, counts); err != nil {
			writeServiceError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, correctionResponse{Status: "corrected"})
	default:
		http.NotFound(w, r)
	}
}
