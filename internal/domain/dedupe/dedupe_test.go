package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	dedupe "github.com/halleloo/fantasy-league/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDeduper(t *testing.T) {
	Convey("Given a fresh deduper", t, func() {
		ctx := context.Background()
		d := dedupe.New()

		Convey("When recording a new submission id", func() {
			seen := d.SeenAndRecord(ctx, "commit-1")

			Convey("Then it should not be seen", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And recording it again should report a duplicate", func() {
				So(d.SeenAndRecord(ctx, "commit-1"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When a recorded id is unrecorded", func() {
			d.SeenAndRecord(ctx, "commit-2")
			d.Unrecord(ctx, "commit-2")

			Convey("Then it can be recorded again", func() {
				So(d.SeenAndRecord(ctx, "commit-2"), ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When unrecording an unknown id", func() {
			d.Unrecord(ctx, "never-seen")

			Convey("Then nothing should change", func() {
				So(d.Size(), ShouldEqual, 0)
			})
		})
	})
}

func TestDeduperEviction(t *testing.T) {
	Convey("Given a deduper bounded to three ids", t, func() {
		ctx := context.Background()
		d := dedupe.New(dedupe.WithMaxSize(3))

		Convey("When a fourth id is recorded", func() {
			So(d.SeenAndRecord(ctx, "a"), ShouldBeFalse)
			So(d.SeenAndRecord(ctx, "b"), ShouldBeFalse)
			So(d.SeenAndRecord(ctx, "c"), ShouldBeFalse)
			So(d.SeenAndRecord(ctx, "d"), ShouldBeFalse)

			Convey("Then the oldest should be evicted", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "a"), ShouldBeFalse) // forgotten, re-recorded
			})

			Convey("Then the newer ids should still be remembered", func() {
				So(d.SeenAndRecord(ctx, "c"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "d"), ShouldBeTrue)
			})
		})
	})

	Convey("Given an unbounded deduper", t, func() {
		ctx := context.Background()
		d := dedupe.New(dedupe.WithMaxSize(0))

		Convey("When many ids are recorded", func() {
			for i := 0; i < 1000; i++ {
				So(d.SeenAndRecord(ctx, fmt.Sprintf("id-%d", i)), ShouldBeFalse)
			}

			Convey("Then nothing should be evicted", func() {
				So(d.Size(), ShouldEqual, 1000)
				So(d.SeenAndRecord(ctx, "id-0"), ShouldBeTrue)
			})
		})
	})
}

func TestDeduperConcurrency(t *testing.T) {
	Convey("Given concurrent recorders of the same id", t, func() {
		ctx := context.Background()
		d := dedupe.New()

		const goroutines = 32
		results := make(chan bool, goroutines)
		var wg sync.WaitGroup
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results <- d.SeenAndRecord(ctx, "contested")
			}()
		}
		wg.Wait()
		close(results)

		Convey("Then exactly one should win the record", func() {
			fresh := 0
			for seen := range results {
				if !seen {
					fresh++
				}
			}
			So(fresh, ShouldEqual, 1)
			So(d.Size(), ShouldEqual, 1)
		})
	})
}
