package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/halleloo/fantasy-league/internal/domain/model"
	"github.com/halleloo/fantasy-league/internal/domain/rules"
)

// RefreshDependencies defines the interface for snapshot refreshes.
type RefreshDependencies interface {
	EnqueueRefresh(ctx context.Context, snap model.Snapshot) bool
}

// RefreshHandler accepts full season snapshots from the persistence
// collaborator and queues them for serialized application.
type RefreshHandler struct {
	deps RefreshDependencies
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps RefreshDependencies) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

// refreshRequest mirrors the season snapshot as JSON. Episode keys are
// strings because JSON object keys always are.
type refreshRequest struct {
	Season struct {
		Name            string    `json:"name"`
		TotalEpisodes   int       `json:"total_episodes"`
		AiredEpisodes   int       `json:"aired_episodes"`
		PotPerTeamCents int64     `json:"pot_per_team_cents"`
		PotSplit        []float64 `json:"pot_split"`
	} `json:"season"`
	Rules []struct {
		Code        string `json:"code"`
		Points      int    `json:"points"`
		Label       string `json:"label"`
		Accumulates bool   `json:"accumulates"`
		Seasonal    bool   `json:"seasonal"`
	} `json:"rules"`
	Contestants []struct {
		ID                  string            `json:"id"`
		Name                string            `json:"name"`
		Eliminated          bool              `json:"eliminated"`
		EliminatedAtEpisode int               `json:"eliminated_at_episode"`
		Episodes            map[string]string `json:"episodes"`
	} `json:"contestants"`
	Teams []struct {
		ID         string   `json:"id"`
		Name       string   `json:"name"`
		Roster     []string `json:"roster"`
		WinnerPick string   `json:"winner_pick"`
	} `json:"teams"`
}

func (req refreshRequest) snapshot() (model.Snapshot, bool) {
	snap := model.Snapshot{
		Config: model.SeasonConfig{
			Name:            req.Season.Name,
			TotalEpisodes:   req.Season.TotalEpisodes,
			AiredEpisodes:   req.Season.AiredEpisodes,
			PotPerTeamCents: req.Season.PotPerTeamCents,
		},
	}
	if len(req.Season.PotSplit) != len(snap.Config.PotSplit) {
		return model.Snapshot{}, false
	}
	copy(snap.Config.PotSplit[:], req.Season.PotSplit)

	for _, r := range req.Rules {
		snap.Rules = append(snap.Rules, rules.Rule{
			Code:        rules.Code(r.Code),
			Points:      r.Points,
			Label:       r.Label,
			Accumulates: r.Accumulates,
			Seasonal:    r.Seasonal,
		})
	}
	for _, c := range req.Contestants {
		cs := model.ContestantState{
			Contestant: model.Contestant{
				ID:                  model.ContestantID(c.ID),
				Name:                c.Name,
				Eliminated:          c.Eliminated,
				EliminatedAtEpisode: c.EliminatedAtEpisode,
			},
			EpisodeCodes: make(map[int]string, len(c.Episodes)),
		}
		for epStr, codes := range c.Episodes {
			ep, err := strconv.Atoi(epStr)
			if err != nil || ep < 1 {
				return model.Snapshot{}, false
			}
			cs.EpisodeCodes[ep] = codes
		}
		snap.Contestants = append(snap.Contestants, cs)
	}
	for _, t := range req.Teams {
		roster := make([]model.ContestantID, len(t.Roster))
		for i, cid := range t.Roster {
			roster[i] = model.ContestantID(cid)
		}
		snap.Teams = append(snap.Teams, model.Team{
			ID:         model.TeamID(t.ID),
			Name:       t.Name,
			Roster:     roster,
			WinnerPick: model.ContestantID(t.WinnerPick),
		})
	}
	return snap, true
}

type refreshResponse struct {
	Status string `json:"status"`
}

// HandleRefresh handles POST /refresh requests. The snapshot is
// queued; validation happens when the refresh worker applies it.
func (h *RefreshHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	const op = "api.refresh"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	snap, ok := req.snapshot()
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if !h.deps.EnqueueRefresh(r.Context(), snap) {
		writeError(w, http.StatusServiceUnavailable, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, refreshResponse{Status: "queued"})
}
