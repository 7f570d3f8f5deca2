// Package season loads season snapshot files.
//
// A season file is the YAML handed over by the persistence
// collaborator: the scoring rule table, the contestants with their
// committed episode code strings, the teams with locked rosters, and
// the season parameters. Points are never read from the file; they
// are recomputed from the code strings when the snapshot is applied.
package season

import (
	"context"
	"fmt"
	"strconv"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/halleloo/fantasy-league/internal/domain/model"
	"github.com/halleloo/fantasy-league/internal/domain/rules"
)

// File mirrors the YAML season file layout.
type File struct {
	Season struct {
		Name            string    `koanf:"name"`
		TotalEpisodes   int       `koanf:"total_episodes"`
		AiredEpisodes   int       `koanf:"aired_episodes"`
		PotPerTeamCents int64     `koanf:"pot_per_team_cents"`
		PotSplit        []float64 `koanf:"pot_split"`
	} `koanf:"season"`

	Rules []struct {
		Code        string `koanf:"code"`
		Points      int    `koanf:"points"`
		Label       string `koanf:"label"`
		Accumulates bool   `koanf:"accumulates"`
		Seasonal    bool   `koanf:"seasonal"`
	} `koanf:"rules"`

	Contestants []struct {
		ID                  string            `koanf:"id"`
		Name                string            `koanf:"name"`
		Eliminated          bool              `koanf:"eliminated"`
		EliminatedAtEpisode int               `koanf:"eliminated_at_episode"`
		Episodes            map[string]string `koanf:"episodes"`
	} `koanf:"contestants"`

	Teams []struct {
		ID         string   `koanf:"id"`
		Name       string   `koanf:"name"`
		Roster     []string `koanf:"roster"`
		WinnerPick string   `koanf:"winner_pick"`
	} `koanf:"teams"`
}

// Load reads and converts a season file into a snapshot. Validation
// beyond structural conversion (roster sizes, reference integrity)
// happens when the snapshot is applied.
func Load(ctx context.Context, path string) (model.Snapshot, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %s: %w", ErrLoadSeason, path, err)
	}

	var f File
	if err := k.UnmarshalWithConf("", &f, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %s: %w", ErrLoadSeason, path, err)
	}
	return f.Snapshot()
}

// Snapshot converts the file form into the domain snapshot.
func (f File) Snapshot() (model.Snapshot, error) {
	snap := model.Snapshot{
		Config: model.SeasonConfig{
			Name:            f.Season.Name,
			TotalEpisodes:   f.Season.TotalEpisodes,
			AiredEpisodes:   f.Season.AiredEpisodes,
			PotPerTeamCents: f.Season.PotPerTeamCents,
		},
	}
	if len(f.Season.PotSplit) != len(snap.Config.PotSplit) {
		return model.Snapshot{}, fmt.Errorf("%w: pot_split needs %d fractions, got %d",
			ErrInvalidSeasonFile, len(snap.Config.PotSplit), len(f.Season.PotSplit))
	}
	copy(snap.Config.PotSplit[:], f.Season.PotSplit)

	for _, r := range f.Rules {
		snap.Rules = append(snap.Rules, rules.Rule{
			Code:        rules.Code(r.Code),
			Points:      r.Points,
			Label:       r.Label,
			Accumulates: r.Accumulates,
			Seasonal:    r.Seasonal,
		})
	}

	for _, c := range f.Contestants {
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
				return model.Snapshot{}, fmt.Errorf("%w: contestant %s episode key %q",
					ErrInvalidSeasonFile, c.ID, epStr)
			}
			cs.EpisodeCodes[ep] = codes
		}
		snap.Contestants = append(snap.Contestants, cs)
	}

	for _, t := range f.Teams {
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
	return snap, nil
}
