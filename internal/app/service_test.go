package app_test

import (
	"context"
	"errors"
	"testing"

	app "github.com/halleloo/fantasy-league/internal/app"
	"github.com/halleloo/fantasy-league/internal/domain/model"
	"github.com/halleloo/fantasy-league/internal/domain/rules"
	"github.com/halleloo/fantasy-league/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// testSnapshot is a small two-team season: four episodes, two aired.
func testSnapshot() model.Snapshot {
	return model.Snapshot{
		Rules: tableRules(),
		Config: model.SeasonConfig{
			Name:            "Test Season",
			TotalEpisodes:   4,
			AiredEpisodes:   2,
			PotPerTeamCents: 2000,
			PotSplit:        [3]float64{0.60, 0.25, 0.15},
		},
		Contestants: []model.ContestantState{
			{Contestant: model.Contestant{ID: "ann", Name: "Ann"}, EpisodeCodes: map[int]string{1: "D,B", 2: "B"}},
			{Contestant: model.Contestant{ID: "bea", Name: "Bea"}, EpisodeCodes: map[int]string{1: "E,E"}},
			{Contestant: model.Contestant{ID: "cal", Name: "Cal"}, EpisodeCodes: map[int]string{}},
			{Contestant: model.Contestant{ID: "dot", Name: "Dot"}, EpisodeCodes: map[int]string{1: "B,G"}},
			{Contestant: model.Contestant{ID: "eve", Name: "Eve"}, EpisodeCodes: map[int]string{1: "A"}},
			{Contestant: model.Contestant{ID: "fay", Name: "Fay"}, EpisodeCodes: map[int]string{1: "Z"}},
		},
		Teams: []model.Team{
			{ID: "t1", Name: "Rhinestones", Roster: []model.ContestantID{"ann", "bea", "cal", "dot", "eve"}, WinnerPick: "ann"},
			{ID: "t2", Name: "Sequins", Roster: []model.ContestantID{"bea", "cal", "dot", "eve", "fay"}, WinnerPick: "fay"},
		},
	}
}

func tableRules() []rules.Rule {
	table := rules.DefaultTable()
	rr := make([]rules.Rule, 0, len(table))
	for _, r := range table {
		rr = append(rr, r)
	}
	return rr
}

// newTestService starts a service and loads the test snapshot.
func newTestService(ctx context.Context) *app.Service {
	svc := app.New()
	So(svc.Start(ctx), ShouldBeNil)
	So(svc.ApplySnapshot(ctx, testSnapshot()), ShouldBeNil)
	return svc
}

func TestApplySnapshot(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		svc := app.New()
		So(svc.Start(ctx), ShouldBeNil)
		Reset(func() {
			svc.Stop()
			cancel()
		})

		Convey("When a valid snapshot is applied", func() {
			err := svc.ApplySnapshot(ctx, testSnapshot())

			Convey("Then the season state should be loaded", func() {
				So(err, ShouldBeNil)
				So(svc.Config().Name, ShouldEqual, "Test Season")
				So(svc.Config().AiredEpisodes, ShouldEqual, 2)
				So(svc.PendingEpisode(), ShouldEqual, 3)
				So(len(svc.Rules()), ShouldEqual, 11)
			})

			Convey("Then recorded codes should be re-scored", func() {
				total, err := svc.TeamTotal(ctx, "t1")
				So(err, ShouldBeNil)
				// ann 16, bea 2, cal 0, dot 2, eve 5
				So(total, ShouldEqual, 25)
			})

			Convey("Then unknown recorded codes should score zero", func() {
				view, err := svc.ContestantEpisodes(ctx, "fay")
				So(err, ShouldBeNil)
				So(view.Total, ShouldEqual, 0)
			})
		})

		Convey("When the snapshot has no rules", func() {
			snap := testSnapshot()
			snap.Rules = nil

			Convey("Then it should be rejected", func() {
				So(errors.Is(svc.ApplySnapshot(ctx, snap), app.ErrInvalidSnapshot), ShouldBeTrue)
			})
		})

		Convey("When aired exceeds total episodes", func() {
			snap := testSnapshot()
			snap.Config.AiredEpisodes = 5

			Convey("Then it should be rejected", func() {
				So(errors.Is(svc.ApplySnapshot(ctx, snap), app.ErrInvalidSnapshot), ShouldBeTrue)
			})
		})

		Convey("When a contestant id is duplicated", func() {
			snap := testSnapshot()
			snap.Contestants = append(snap.Contestants, snap.Contestants[0])

			Convey("Then it should be rejected", func() {
				So(errors.Is(svc.ApplySnapshot(ctx, snap), app.ErrInvalidSnapshot), ShouldBeTrue)
			})
		})

		Convey("When a roster has the wrong size", func() {
			snap := testSnapshot()
			snap.Teams[0].Roster = snap.Teams[0].Roster[:4]

			Convey("Then it should be rejected", func() {
				So(errors.Is(svc.ApplySnapshot(ctx, snap), app.ErrInvalidRosterSize), ShouldBeTrue)
			})
		})

		Convey("When a roster references an unknown contestant", func() {
			snap := testSnapshot()
			snap.Teams[0].Roster[4] = "ghost"

			Convey("Then it should be rejected", func() {
				So(errors.Is(svc.ApplySnapshot(ctx, snap), app.ErrUnknownContestant), ShouldBeTrue)
			})
		})

		Convey("When a winner pick references an unknown contestant", func() {
			snap := testSnapshot()
			snap.Teams[1].WinnerPick = "ghost"

			Convey("Then it should be rejected", func() {
				So(errors.Is(svc.ApplySnapshot(ctx, snap), app.ErrUnknownContestant), ShouldBeTrue)
			})
		})

		Convey("When a snapshot fails validation after one was applied", func() {
			So(svc.ApplySnapshot(ctx, testSnapshot()), ShouldBeNil)
			bad := testSnapshot()
			bad.Rules = nil
			So(svc.ApplySnapshot(ctx, bad), ShouldNotBeNil)

			Convey("Then the previous season should be untouched", func() {
				So(svc.Config().Name, ShouldEqual, "Test Season")
				total, err := svc.TeamTotal(ctx, "t1")
				So(err, ShouldBeNil)
				So(total, ShouldEqual, 25)
			})
		})
	})
}

func TestEliminate(t *testing.T) {
	Convey("Given a loaded service", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		svc := newTestService(ctx)
		Reset(func() {
			svc.Stop()
			cancel()
		})

		Convey("When an active contestant is eliminated", func() {
			err := svc.Eliminate(ctx, "bea")

			Convey("Then they should be marked with the last aired episode", func() {
				So(err, ShouldBeNil)
				views, err := svc.Contestants(ctx)
				So(err, ShouldBeNil)
				for _, v := range views {
					if v.ContestantID == "bea" {
						So(v.Eliminated, ShouldBeTrue)
						So(v.EliminatedAtEpisode, ShouldEqual, 2)
					}
				}
			})

			Convey("Then their recorded points should still count", func() {
				total, err := svc.TeamTotal(ctx, "t1")
				So(err, ShouldBeNil)
				So(total, ShouldEqual, 25)
			})

			Convey("Then eliminating them again should fail", func() {
				So(errors.Is(svc.Eliminate(ctx, "bea"), app.ErrAlreadyEliminated), ShouldBeTrue)
			})

			Convey("Then drafting for them should fail", func() {
				err := svc.SetDraft(ctx, "bea", emptySelection())
				So(errors.Is(err, app.ErrContestantEliminated), ShouldBeTrue)
			})
		})

		Convey("When the contestant does not exist", func() {
			So(errors.Is(svc.Eliminate(ctx, "ghost"), app.ErrUnknownContestant), ShouldBeTrue)
		})

		Convey("When a contestant with a pending draft is eliminated", func() {
			So(svc.SetDraft(ctx, "dot", toggleSelection(svc.Rules(), "B")), ShouldBeNil)
			So(svc.Eliminate(ctx, "dot"), ShouldBeNil)

			Convey("Then their draft should be discarded", func() {
				So(len(svc.PreviewDeltas(ctx)), ShouldEqual, 0)
			})
		})
	})
}

func TestStats(t *testing.T) {
	Convey("Given a loaded service", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		svc := newTestService(ctx)
		Reset(func() {
			svc.Stop()
			cancel()
		})

		Convey("When stats are requested", func() {
			stats := svc.Stats()

			Convey("Then they should describe the season", func() {
				So(stats["started"], ShouldBeTrue)
				So(stats["season"], ShouldEqual, "Test Season")
				So(stats["teams"], ShouldEqual, 2)
				So(stats["contestants"], ShouldEqual, 6)
				So(stats["airedEpisodes"], ShouldEqual, 2)
				So(stats["totalEpisodes"], ShouldEqual, 4)
				So(stats["pendingDrafts"], ShouldEqual, 0)
			})
		})
	})
}
