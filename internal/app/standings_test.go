package app_test

import (
	"context"
	"errors"
	"testing"

	app "github.com/halleloo/fantasy-league/internal/app"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPotShare(t *testing.T) {
	Convey("Given a 60/25/15 split of a 40000 cent pot", t, func() {
		split := [3]float64{0.60, 0.25, 0.15}

		Convey("Then the top three ranks should get their shares", func() {
			So(app.PotShare(1, 40000, split), ShouldEqual, 24000)
			So(app.PotShare(2, 40000, split), ShouldEqual, 10000)
			So(app.PotShare(3, 40000, split), ShouldEqual, 6000)
		})

		Convey("Then every other rank should get nothing", func() {
			So(app.PotShare(4, 40000, split), ShouldEqual, 0)
			So(app.PotShare(0, 40000, split), ShouldEqual, 0)
			So(app.PotShare(-1, 40000, split), ShouldEqual, 0)
		})

		Convey("Then fractional cents should round half away from zero", func() {
			// 333 * 0.25 = 83.25 -> 83; 333 * 0.15 = 49.95 -> 50
			So(app.PotShare(2, 333, split), ShouldEqual, 83)
			So(app.PotShare(3, 333, split), ShouldEqual, 50)
		})
	})
}

func TestStandings(t *testing.T) {
	Convey("Given a loaded service", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		svc := newTestService(ctx)
		Reset(func() {
			svc.Stop()
			cancel()
		})

		Convey("When standings are computed", func() {
			standings, err := svc.Standings(ctx)

			Convey("Then teams should be ordered by total descending", func() {
				So(err, ShouldBeNil)
				So(len(standings), ShouldEqual, 2)
				So(standings[0].TeamID, ShouldEqual, "t1")
				So(standings[0].Total, ShouldEqual, 25)
				So(standings[1].TeamID, ShouldEqual, "t2")
				So(standings[1].Total, ShouldEqual, 9)
			})

			Convey("Then ranks should be consecutive from one", func() {
				So(standings[0].Rank, ShouldEqual, 1)
				So(standings[1].Rank, ShouldEqual, 2)
			})

			Convey("Then pot shares should derive from the rank", func() {
				// Pot: 2 teams x 2000 cents = 4000.
				So(standings[0].PotShareCents, ShouldEqual, 2400)
				So(standings[1].PotShareCents, ShouldEqual, 1000)
			})

			Convey("Then rosters should all be active", func() {
				So(standings[0].ActiveRoster, ShouldEqual, 5)
				So(standings[0].WinnerPick, ShouldEqual, "ann")
			})
		})

		Convey("When a roster member is eliminated", func() {
			So(svc.Eliminate(ctx, "bea"), ShouldBeNil)
			standings, err := svc.Standings(ctx)

			Convey("Then the active roster count should drop but not the total", func() {
				So(err, ShouldBeNil)
				So(standings[0].ActiveRoster, ShouldEqual, 4)
				So(standings[0].Total, ShouldEqual, 25)
			})
		})

		Convey("When two teams are tied", func() {
			// Zero out ann's scores so both teams hold the same roster
			// value: t1 = bea+dot+eve = 9, t2 = 9.
			So(svc.CorrectEpisode(ctx, "ann", 1, nil), ShouldBeNil)
			So(svc.CorrectEpisode(ctx, "ann", 2, nil), ShouldBeNil)
			standings, err := svc.Standings(ctx)

			Convey("Then the tie should break by name ascending", func() {
				So(err, ShouldBeNil)
				So(standings[0].Total, ShouldEqual, standings[1].Total)
				So(standings[0].Name, ShouldEqual, "Rhinestones")
				So(standings[1].Name, ShouldEqual, "Sequins")
				So(standings[0].Rank, ShouldEqual, 1)
				So(standings[1].Rank, ShouldEqual, 2)
			})
		})
	})
}

func TestTeamViews(t *testing.T) {
	Convey("Given a loaded service", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		svc := newTestService(ctx)
		Reset(func() {
			svc.Stop()
			cancel()
		})

		Convey("When a team view is requested", func() {
			view, err := svc.TeamView(ctx, "t1")

			Convey("Then it should break down the roster", func() {
				So(err, ShouldBeNil)
				So(view.Name, ShouldEqual, "Rhinestones")
				So(view.Total, ShouldEqual, 25)
				So(len(view.Roster), ShouldEqual, 5)
				So(view.Roster[0].ContestantID, ShouldEqual, "ann")
				So(view.Roster[0].Total, ShouldEqual, 16)
				So(view.WinnerPick, ShouldEqual, "ann")
				So(view.PreviewDelta, ShouldEqual, 0)
			})
		})

		Convey("When a draft is pending for a roster member", func() {
			So(svc.SetDraft(ctx, "ann", toggleSelection(svc.Rules(), "A")), ShouldBeNil)
			view, err := svc.TeamView(ctx, "t1")

			Convey("Then the preview delta should show it", func() {
				So(err, ShouldBeNil)
				So(view.PreviewDelta, ShouldEqual, 5)
				So(view.Total, ShouldEqual, 25)
			})
		})

		Convey("When the team is unknown", func() {
			_, err := svc.TeamView(ctx, "ghost")
			So(errors.Is(err, app.ErrUnknownTeam), ShouldBeTrue)
		})

		Convey("When teams are listed", func() {
			teams := svc.Teams(ctx)
			So(len(teams), ShouldEqual, 2)
			So(string(teams[0].ID), ShouldEqual, "t1")
		})
	})
}

func TestContestantViews(t *testing.T) {
	Convey("Given a loaded service", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		svc := newTestService(ctx)
		Reset(func() {
			svc.Stop()
			cancel()
		})

		Convey("When contestants are listed", func() {
			views, err := svc.Contestants(ctx)

			Convey("Then they should be sorted by total then name", func() {
				So(err, ShouldBeNil)
				So(len(views), ShouldEqual, 6)
				So(views[0].ContestantID, ShouldEqual, "ann") // 16
				So(views[1].ContestantID, ShouldEqual, "eve") // 5
				// bea and dot both have 2; Bea sorts first.
				So(views[2].ContestantID, ShouldEqual, "bea")
				So(views[3].ContestantID, ShouldEqual, "dot")
			})

			Convey("Then drafted-by counts should count roster membership", func() {
				for _, v := range views {
					switch v.ContestantID {
					case "ann", "fay":
						So(v.DraftedBy, ShouldEqual, 1)
					default:
						So(v.DraftedBy, ShouldEqual, 2)
					}
				}
			})
		})

		Convey("When a contestant's episodes are requested", func() {
			view, err := svc.ContestantEpisodes(ctx, "ann")

			Convey("Then entries should be ascending with rendered codes", func() {
				So(err, ShouldBeNil)
				So(view.Total, ShouldEqual, 16)
				So(len(view.Episodes), ShouldEqual, 2)
				So(view.Episodes[0].Episode, ShouldEqual, 1)
				So(view.Episodes[0].Codes, ShouldEqual, "B,D")
				So(view.Episodes[0].Points, ShouldEqual, 13)
				So(view.Episodes[1].Points, ShouldEqual, 3)
			})

			Convey("Then highlights should list the non-zero episodes", func() {
				So(view.Highlights, ShouldResemble, []int{1, 2})
			})
		})

		Convey("When the contestant is unknown", func() {
			_, err := svc.ContestantEpisodes(ctx, "ghost")
			So(errors.Is(err, app.ErrUnknownContestant), ShouldBeTrue)
		})
	})
}

func TestEpisodeLog(t *testing.T) {
	Convey("Given a loaded service", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		svc := newTestService(ctx)
		Reset(func() {
			svc.Stop()
			cancel()
		})

		Convey("When the log for episode one is requested", func() {
			log, err := svc.EpisodeLog(ctx, 1)

			Convey("Then only non-zero scorers should appear, sorted", func() {
				So(err, ShouldBeNil)
				// ann 13, eve 5, bea 2, dot 2; cal and fay scored nothing.
				So(len(log), ShouldEqual, 4)
				So(log[0].ContestantID, ShouldEqual, "ann")
				So(log[0].Points, ShouldEqual, 13)
				So(log[1].ContestantID, ShouldEqual, "eve")
				So(log[2].ContestantID, ShouldEqual, "bea")
				So(log[3].ContestantID, ShouldEqual, "dot")
			})
		})

		Convey("When the episode has not aired", func() {
			_, err := svc.EpisodeLog(ctx, 3)
			So(errors.Is(err, app.ErrEpisodeNotAired), ShouldBeTrue)
		})

		Convey("When the episode number is out of range", func() {
			_, err := svc.EpisodeLog(ctx, 0)
			So(errors.Is(err, app.ErrEpisodeNotAired), ShouldBeTrue)
		})
	})
}
