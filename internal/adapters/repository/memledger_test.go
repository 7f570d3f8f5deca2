package repository_test

import (
	"context"
	"testing"

	repository "github.com/halleloo/fantasy-league/internal/adapters/repository"
	"github.com/halleloo/fantasy-league/internal/domain/model"
	"github.com/halleloo/fantasy-league/internal/domain/rules"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemLedger(t *testing.T) {
	Convey("Given an empty ledger", t, func() {
		ctx := context.Background()
		ledger := repository.NewMemLedger()

		Convey("When recording for an unknown contestant", func() {
			err := ledger.RecordEpisode(ctx, "ghost", 1, rules.CodeCounts{"B": 1}, 3)

			Convey("Then it should fail", func() {
				So(err, ShouldEqual, repository.ErrUnknownContestant)
			})
		})

		Convey("When a contestant is registered", func() {
			ledger.Register(ctx, "queen-1")

			Convey("Then the count should reflect it", func() {
				So(ledger.Count(ctx), ShouldEqual, 1)
			})

			Convey("And registering again should be a no-op", func() {
				ledger.Register(ctx, "queen-1")
				So(ledger.Count(ctx), ShouldEqual, 1)
			})

			Convey("And an episode is recorded", func() {
				counts := rules.CodeCounts{"D": 1, "E": 3}
				err := ledger.RecordEpisode(ctx, "queen-1", 2, counts, 13)
				So(err, ShouldBeNil)

				Convey("Then the entry should be retrievable", func() {
					e, err := ledger.Entry(ctx, "queen-1", 2)
					So(err, ShouldBeNil)
					So(e.Episode, ShouldEqual, 2)
					So(e.Points, ShouldEqual, 13)
					So(e.Codes["E"], ShouldEqual, 3)
				})

				Convey("Then mutating the returned codes should not leak", func() {
					e, _ := ledger.Entry(ctx, "queen-1", 2)
					e.Codes["E"] = 99
					again, _ := ledger.Entry(ctx, "queen-1", 2)
					So(again.Codes["E"], ShouldEqual, 3)
				})

				Convey("Then re-recording the same episode should overwrite", func() {
					err := ledger.RecordEpisode(ctx, "queen-1", 2, rules.CodeCounts{"B": 1}, 3)
					So(err, ShouldBeNil)
					e, _ := ledger.Entry(ctx, "queen-1", 2)
					So(e.Points, ShouldEqual, 3)
					So(len(e.Codes), ShouldEqual, 1)
				})

				Convey("Then a missing episode should return ErrNoEntry", func() {
					_, err := ledger.Entry(ctx, "queen-1", 7)
					So(err, ShouldEqual, repository.ErrNoEntry)
				})
			})
		})

		Convey("When several episodes are recorded out of order", func() {
			ledger.Register(ctx, "queen-2")
			So(ledger.RecordEpisode(ctx, "queen-2", 3, rules.CodeCounts{"B": 1}, 3), ShouldBeNil)
			So(ledger.RecordEpisode(ctx, "queen-2", 1, rules.CodeCounts{"D": 1}, 10), ShouldBeNil)
			So(ledger.RecordEpisode(ctx, "queen-2", 2, rules.CodeCounts{}, 0), ShouldBeNil)

			Convey("Then Entries should come back in ascending order", func() {
				entries, err := ledger.Entries(ctx, "queen-2")
				So(err, ShouldBeNil)
				So(len(entries), ShouldEqual, 3)
				So(entries[0].Episode, ShouldEqual, 1)
				So(entries[1].Episode, ShouldEqual, 2)
				So(entries[2].Episode, ShouldEqual, 3)
			})

			Convey("Then TotalThrough should respect the episode limit", func() {
				total, err := ledger.TotalThrough(ctx, "queen-2", 2)
				So(err, ShouldBeNil)
				So(total, ShouldEqual, 10)

				total, err = ledger.TotalThrough(ctx, "queen-2", 3)
				So(err, ShouldBeNil)
				So(total, ShouldEqual, 13)
			})

			Convey("Then the non-zero iterator should skip zero episodes", func() {
				var eps []int
				for ep := range ledger.EpisodesWithNonZero("queen-2") {
					eps = append(eps, ep)
				}
				So(eps, ShouldResemble, []int{1, 3})
			})

			Convey("Then the iterator should be restartable", func() {
				seq := ledger.EpisodesWithNonZero("queen-2")

				var first []int
				for ep := range seq {
					first = append(first, ep)
					break
				}
				var second []int
				for ep := range seq {
					second = append(second, ep)
				}

				So(first, ShouldResemble, []int{1})
				So(second, ShouldResemble, []int{1, 3})
			})
		})

		Convey("When the ledger is reset", func() {
			ledger.Register(ctx, "queen-3")
			So(ledger.RecordEpisode(ctx, "queen-3", 1, rules.CodeCounts{"B": 1}, 3), ShouldBeNil)
			ledger.Reset(ctx)

			Convey("Then everything should be gone", func() {
				So(ledger.Count(ctx), ShouldEqual, 0)
				_, err := ledger.Entries(ctx, "queen-3")
				So(err, ShouldEqual, repository.ErrUnknownContestant)
			})
		})
	})
}

func TestMemLedgerWithContestants(t *testing.T) {
	Convey("Given a ledger seeded through options", t, func() {
		ctx := context.Background()
		ids := []model.ContestantID{"a", "b", "c"}
		ledger := repository.NewMemLedger(repository.WithContestants(ids...))

		Convey("Then every contestant should be registered", func() {
			So(ledger.Count(ctx), ShouldEqual, 3)
			for _, id := range ids {
				total, err := ledger.TotalThrough(ctx, id, 10)
				So(err, ShouldBeNil)
				So(total, ShouldEqual, 0)
			}
		})
	})
}
