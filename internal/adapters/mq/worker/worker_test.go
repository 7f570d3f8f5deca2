package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	queue "github.com/halleloo/fantasy-league/internal/adapters/mq/queue"
	worker "github.com/halleloo/fantasy-league/internal/adapters/mq/worker"
	"github.com/halleloo/fantasy-league/internal/domain/model"
	"github.com/halleloo/fantasy-league/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// recordingApplier collects applied snapshots and can be told to fail.
type recordingApplier struct {
	mu       sync.Mutex
	applied  []string
	attempts int
	fail     bool
}

func (a *recordingApplier) ApplySnapshot(ctx context.Context, s model.Snapshot) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.attempts++
	if a.fail {
		return errors.New("apply failed")
	}
	a.applied = append(a.applied, s.Config.Name)
	return nil
}

func (a *recordingApplier) attemptCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.attempts
}

func (a *recordingApplier) names() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.applied...)
}

func (a *recordingApplier) setFail(fail bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fail = fail
}

func waitFor(check func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if check() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func TestRefreshWorker(t *testing.T) {
	Convey("Given a running refresh worker", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.New()
		applier := &recordingApplier{}
		w := worker.New(q, applier, worker.WithName("test"))
		go w.Run(ctx)

		Convey("When snapshots are enqueued", func() {
			So(q.Enqueue(ctx, model.Snapshot{Config: model.SeasonConfig{Name: "a"}}), ShouldBeTrue)
			So(q.Enqueue(ctx, model.Snapshot{Config: model.SeasonConfig{Name: "b"}}), ShouldBeTrue)

			Convey("Then they should be applied in order", func() {
				So(waitFor(func() bool { return len(applier.names()) == 2 }), ShouldBeTrue)
				So(applier.names(), ShouldResemble, []string{"a", "b"})
			})
		})

		Convey("When an apply fails", func() {
			applier.setFail(true)
			So(q.Enqueue(ctx, model.Snapshot{Config: model.SeasonConfig{Name: "bad"}}), ShouldBeTrue)

			Convey("Then the worker should keep consuming", func() {
				So(waitFor(func() bool { return applier.attemptCount() == 1 }), ShouldBeTrue)

				applier.setFail(false)
				So(q.Enqueue(ctx, model.Snapshot{Config: model.SeasonConfig{Name: "good"}}), ShouldBeTrue)
				So(waitFor(func() bool { return len(applier.names()) == 1 }), ShouldBeTrue)
				So(applier.names(), ShouldResemble, []string{"good"})
			})
		})

		Convey("When the worker is shut down", func() {
			err := w.Shutdown(ctx)

			Convey("Then it should stop cleanly", func() {
				So(err, ShouldBeNil)
			})

			Convey("And shutting down again should be safe", func() {
				So(w.Shutdown(ctx), ShouldBeNil)
			})
		})

		Convey("When the queue closes", func() {
			So(q.Close(), ShouldBeNil)

			Convey("Then the worker should exit and Shutdown should return", func() {
				So(w.Shutdown(ctx), ShouldBeNil)
			})
		})
	})
}
