package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/halleloo/fantasy-league/internal/domain/model"
	"github.com/halleloo/fantasy-league/internal/domain/types"
)

// ContestantsDependencies defines the interface for contestant
// operations.
type ContestantsDependencies interface {
	Contestants(ctx context.Context) ([]types.ContestantView, error)
	ContestantEpisodes(ctx context.Context, id model.ContestantID) (types.ContestantEpisodes, error)
	Eliminate(ctx context.Context, id model.ContestantID) error
}

// ContestantsHandler handles contestant requests.
type ContestantsHandler struct {
	deps ContestantsDependencies
}

// NewContestantsHandler creates a new contestants handler.
func NewContestantsHandler(deps ContestantsDependencies) *ContestantsHandler {
	return &ContestantsHandler{deps: deps}
}

// HandleListContestants handles GET /contestants requests.
func (h *ContestantsHandler) HandleListContestants(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_contestants"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	views, err := h.deps.Contestants(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, views)
}

type eliminateResponse struct {
	Status string `json:"status"`
}

// HandleContestantSubroutes handles
// GET /contestants/{id}/episodes and POST /contestants/{id}/eliminate.
func (h *ContestantsHandler) HandleContestantSubroutes(w http.ResponseWriter, r *http.Request) {
	const op = "api.contestant"
	rest := strings.TrimPrefix(r.URL.Path, "/contestants/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	id := model.ContestantID(parts[0])

	switch {
	case parts[1] == "episodes" && r.Method == http.MethodGet:
		view, err := h.deps.ContestantEpisodes(r.Context(), id)
		if err != nil {
			writeServiceError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	case parts[1] == "eliminate" && r.Method == http.MethodPost:
		if err := h.deps.Eliminate(r.Context(), id); err != nil {
			writeServiceError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, eliminateResponse{Status: "eliminated"})
	default:
		http.NotFound(w, r)
	}
}
