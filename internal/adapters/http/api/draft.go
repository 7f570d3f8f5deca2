package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/halleloo/fantasy-league/internal/domain/model"
	"github.com/halleloo/fantasy-league/internal/domain/rules"
	"github.com/halleloo/fantasy-league/internal/domain/scoring"
	"github.com/halleloo/fantasy-league/internal/domain/types"
)

// DraftDependencies defines the interface for draft operations.
type DraftDependencies interface {
	SetDraft(ctx context.Context, id model.ContestantID, sel scoring.Selection) error
	ClearDraft(ctx context.Context, id model.ContestantID) error
	PreviewDeltas(ctx context.Context) []types.TeamDelta
	CommitEpisode(ctx context.Context, submissionID string) (types.CommitResult, error)
	PendingEpisode() int
	Rules() rules.Table
}

// DraftHandler handles draft selection, preview and commit requests.
type DraftHandler struct {
	deps DraftDependencies
}

// NewDraftHandler creates a new draft handler.
func NewDraftHandler(deps DraftDependencies) *DraftHandler {
	return &DraftHandler{deps: deps}
}

// selectionRequest mirrors the admin entry form: toggles carry a
// boolean per one-shot code, counts an occurrence count per
// accumulating code. The split keeps a toggle code from ever holding a
// count and vice versa; mismatches are rejected.
type selectionRequest struct {
	Toggles map[string]bool `json:"toggles"`
	Counts  map[string]int  `json:"counts"`
}

func (req selectionRequest) selection(t rules.Table) (scoring.Selection, error) {
	picks := make([]scoring.Pick, 0, len(req.Toggles)+len(req.Counts))
	for code, on := range req.Toggles {
		p, err := scoring.NewToggle(t, rules.Code(code), on)
		if err != nil {
			return scoring.Selection{}, err
		}
		picks = append(picks, p)
	}
	for code, n := range req.Counts {
		p, err := scoring.NewAccumulating(t, rules.Code(code), n)
		if err != nil {
			return scoring.Selection{}, err
		}
		picks = append(picks, p)
	}
	return scoring.NewSelection(picks...), nil
}

type selectionResponse struct {
	Status  string `json:"status"`
	Episode int    `json:"episode"`
}

// HandleSelection handles PUT and DELETE /draft/{contestant_id}.
func (h *DraftHandler) HandleSelection(w http.ResponseWriter, r *http.Request) {
	const op = "api.draft_selection"
	id := strings.TrimPrefix(r.URL.Path, "/draft/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req selectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		sel, err := req.selection(h.deps.Rules())
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
			return
		}
		if err := h.deps.SetDraft(r.Context(), model.ContestantID(id), sel); err != nil {
			writeServiceError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, selectionResponse{Status: "set", Episode: h.deps.PendingEpisode()})
	case http.MethodDelete:
		if err := h.deps.ClearDraft(r.Context(), model.ContestantID(id)); err != nil {
			writeServiceError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, selectionResponse{Status: "cleared", Episode: h.deps.PendingEpisode()})
	default:
		http.NotFound(w, r)
	}
}

type previewResponse struct {
	Episode int               `json:"episode"`
	Deltas  []types.TeamDelta `json:"deltas"`
}

// HandlePreview handles GET /draft/preview requests.
func (h *DraftHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, previewResponse{
		Episode: h.deps.PendingEpisode(),
		Deltas:  h.deps.PreviewDeltas(r.Context()),
	})
}

// commitRequest carries the idempotency key for an episode commit.
type commitRequest struct {
	SubmissionID string `json:"submission_id"`
}

// HandleCommit handles POST /draft/commit requests.
func (h *DraftHandler) HandleCommit(w http.ResponseWriter, r *http.Request) {
	const op = "api.draft_commit"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req commitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.SubmissionID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	result, err := h.deps.CommitEpisode(r.Context(), req.SubmissionID)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
