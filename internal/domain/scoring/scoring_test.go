package scoring_test

import (
	"testing"

	rules "github.com/halleloo/fantasy-league/internal/domain/rules"
	scoring "github.com/halleloo/fantasy-league/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPoints(t *testing.T) {
	Convey("Given the default rule table", t, func() {
		table := rules.DefaultTable()

		Convey("When scoring a mix of one-shot and accumulating codes", func() {
			counts := rules.ParseCodes("D,E,E,E", table)

			Convey("Then the total should be 10 + 3x1 = 13", func() {
				So(scoring.Points(counts, table), ShouldEqual, 13)
			})
		})

		Convey("When a one-shot code appears multiple times", func() {
			counts := rules.CodeCounts{"D": 3}

			Convey("Then it should score exactly once", func() {
				So(scoring.Points(counts, table), ShouldEqual, 10)
			})
		})

		Convey("When an accumulating code appears multiple times", func() {
			counts := rules.CodeCounts{"C": 4}

			Convey("Then it should score per occurrence", func() {
				So(scoring.Points(counts, table), ShouldEqual, 8)
			})
		})

		Convey("When negative codes are applied", func() {
			counts := rules.ParseCodes("B,F,G", table)

			Convey("Then penalties should subtract", func() {
				So(scoring.Points(counts, table), ShouldEqual, 3-2-1)
			})
		})

		Convey("When the multiset is empty", func() {
			So(scoring.Points(rules.CodeCounts{}, table), ShouldEqual, 0)
		})

		Convey("When a count is zero or negative", func() {
			counts := rules.CodeCounts{"D": 0, "E": -2, "B": 1}

			Convey("Then only the positive count should score", func() {
				So(scoring.Points(counts, table), ShouldEqual, 3)
			})
		})

		Convey("When a code is not in the table", func() {
			counts := rules.CodeCounts{"Z": 5, "B": 1}

			Convey("Then the unknown code should contribute nothing", func() {
				So(scoring.Points(counts, table), ShouldEqual, 3)
			})
		})

		Convey("When the same codes arrive in different orders", func() {
			a := rules.ParseCodes("D,E,E,B", table)
			b := rules.ParseCodes("E,B,D,E", table)

			Convey("Then the totals should match", func() {
				So(scoring.Points(a, table), ShouldEqual, scoring.Points(b, table))
			})
		})
	})
}

func TestSelections(t *testing.T) {
	Convey("Given the default rule table", t, func() {
		table := rules.DefaultTable()

		Convey("When building a toggle for a one-shot code", func() {
			pick, err := scoring.NewToggle(table, "D", true)

			Convey("Then it should count once", func() {
				So(err, ShouldBeNil)
				So(pick.Code(), ShouldEqual, rules.Code("D"))
				So(pick.Count(), ShouldEqual, 1)
			})
		})

		Convey("When building a toggle that is off", func() {
			pick, err := scoring.NewToggle(table, "B", false)

			Convey("Then it should count zero", func() {
				So(err, ShouldBeNil)
				So(pick.Count(), ShouldEqual, 0)
			})
		})

		Convey("When building a toggle for an accumulating code", func() {
			_, err := scoring.NewToggle(table, "E", true)

			Convey("Then it should be rejected", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "needs a count")
			})
		})

		Convey("When building a counted pick for an accumulating code", func() {
			pick, err := scoring.NewAccumulating(table, "E", 3)

			Convey("Then it should carry the count", func() {
				So(err, ShouldBeNil)
				So(pick.Count(), ShouldEqual, 3)
			})
		})

		Convey("When building a counted pick for a one-shot code", func() {
			_, err := scoring.NewAccumulating(table, "D", 2)

			Convey("Then it should be rejected", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "needs a toggle")
			})
		})

		Convey("When the count is negative", func() {
			_, err := scoring.NewAccumulating(table, "E", -1)

			Convey("Then it should be rejected", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When the code is unknown", func() {
			_, errToggle := scoring.NewToggle(table, "Z", true)
			_, errCount := scoring.NewAccumulating(table, "Z", 1)

			Convey("Then both constructors should reject it", func() {
				So(errToggle, ShouldNotBeNil)
				So(errCount, ShouldNotBeNil)
			})
		})

		Convey("When combining picks into a selection", func() {
			d, _ := scoring.NewToggle(table, "D", true)
			e, _ := scoring.NewAccumulating(table, "E", 3)
			sel := scoring.NewSelection(d, e)

			Convey("Then counts should reflect the picks", func() {
				counts := sel.Counts()
				So(counts["D"], ShouldEqual, 1)
				So(counts["E"], ShouldEqual, 3)
			})

			Convey("Then the selection should score like the multiset", func() {
				So(sel.Points(table), ShouldEqual, 13)
			})

			Convey("Then it should not be empty", func() {
				So(sel.IsEmpty(), ShouldBeFalse)
			})
		})

		Convey("When a later pick repeats a code", func() {
			first, _ := scoring.NewAccumulating(table, "E", 1)
			second, _ := scoring.NewAccumulating(table, "E", 5)
			sel := scoring.NewSelection(first, second)

			Convey("Then the later pick should replace the earlier one", func() {
				So(sel.Counts()["E"], ShouldEqual, 5)
			})
		})

		Convey("When all picks are off or zero", func() {
			off, _ := scoring.NewToggle(table, "D", false)
			zero, _ := scoring.NewAccumulating(table, "E", 0)
			sel := scoring.NewSelection(off, zero)

			Convey("Then the selection should be empty and score zero", func() {
				So(sel.IsEmpty(), ShouldBeTrue)
				So(sel.Points(table), ShouldEqual, 0)
				So(len(sel.Counts()), ShouldEqual, 0)
			})
		})
	})
}
