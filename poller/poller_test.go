package poller

import (
	"context"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/mengeric/genmedia-server-go/genmedia"
)

// scriptedChecker 按脚本依次返回检查结果，记录调用次数。
type scriptedChecker struct {
	mu    sync.Mutex
	steps []func() (genmedia.Snapshot, error)
	calls map[string]int
}

func newScripted(steps ...func() (genmedia.Snapshot, error)) *scriptedChecker {
	return &scriptedChecker{steps: steps, calls: map[string]int{}}
}

func (c *scriptedChecker) CheckStatus(ctx context.Context, jobID string) (genmedia.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[jobID]++
	if len(c.steps) == 0 {
		return genmedia.Snapshot{JobID: jobID, Status: genmedia.StatusProcessing}, nil
	}
	step := c.steps[0]
	if len(c.steps) > 1 {
		c.steps = c.steps[1:]
	}
	return step()
}

func (c *scriptedChecker) count(jobID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[jobID]
}

func processing(jobID string, progress int) func() (genmedia.Snapshot, error) {
	return func() (genmedia.Snapshot, error) {
		return genmedia.Snapshot{JobID: jobID, Status: genmedia.StatusProcessing, Progress: progress}, nil
	}
}

func completed(jobID, url string) func() (genmedia.Snapshot, error) {
	return func() (genmedia.Snapshot, error) {
		return genmedia.Snapshot{JobID: jobID, Status: genmedia.StatusCompleted, Progress: 100, Video: &genmedia.VideoRef{URL: url}}, nil
	}
}

func failing(err error) func() (genmedia.Snapshot, error) {
	return func() (genmedia.Snapshot, error) { return genmedia.Snapshot{}, err }
}

func TestPoller_StopsOnTerminal(t *testing.T) {
	Convey("poller checks until the job completes, then stops itself", t, func() {
		chk := newScripted(
			processing("j1", 0),
			processing("j1", 40),
			completed("j1", "u1"),
		)
		var mu sync.Mutex
		var seen []string
		p := New(chk, 10*time.Millisecond, WithOnUpdate(func(s genmedia.Snapshot) {
			mu.Lock()
			seen = append(seen, s.Status)
			mu.Unlock()
		}))
		p.Watch(context.Background(), "j1")

		time.Sleep(120 * time.Millisecond)
		So(chk.count("j1"), ShouldEqual, 3) // 终态后不再检查
		snap, ok := p.Snapshot()
		So(ok, ShouldBeTrue)
		So(snap.Status, ShouldEqual, genmedia.StatusCompleted)
		So(snap.Video.URL, ShouldEqual, "u1")
		So(p.Err(), ShouldBeNil)
		mu.Lock()
		defer mu.Unlock()
		So(seen, ShouldResemble, []string{"processing", "processing", "completed"})
	})
}

func TestPoller_ContinuesOnTransientError(t *testing.T) {
	Convey("a transient check failure does not stop the poller", t, func() {
		chk := newScripted(
			failing(&genmedia.TransientCheckError{Op: "poll", Err: context.DeadlineExceeded}),
			completed("j2", "u2"),
		)
		p := New(chk, 10*time.Millisecond)
		p.Watch(context.Background(), "j2")

		time.Sleep(80 * time.Millisecond)
		So(chk.count("j2"), ShouldEqual, 2)
		snap, ok := p.Snapshot()
		So(ok, ShouldBeTrue)
		So(snap.Status, ShouldEqual, genmedia.StatusCompleted)
		So(p.Err(), ShouldBeNil)
	})
}

func TestPoller_StopsOnNotFound(t *testing.T) {
	Convey("an unknown job stops the poller with a recorded error", t, func() {
		chk := newScripted(failing(genmedia.ErrJobNotFound))
		p := New(chk, 10*time.Millisecond)
		p.Watch(context.Background(), "j3")

		time.Sleep(60 * time.Millisecond)
		So(chk.count("j3"), ShouldEqual, 1)
		_, ok := p.Snapshot()
		So(ok, ShouldBeFalse)
		So(p.Err(), ShouldEqual, genmedia.ErrJobNotFound)
	})
}

func TestPoller_SwitchCancelsPrevious(t *testing.T) {
	Convey("watching a new job cancels the previous timer", t, func() {
		chk := newScripted() // 永远 processing
		p := New(chk, 10*time.Millisecond)
		p.Watch(context.Background(), "old")
		time.Sleep(35 * time.Millisecond)
		p.Watch(context.Background(), "new")
		time.Sleep(35 * time.Millisecond)

		oldCalls := chk.count("old")
		time.Sleep(35 * time.Millisecond)
		// 旧任务的轮询已取消，不再产生新调用
		So(chk.count("old"), ShouldEqual, oldCalls)
		So(chk.count("new"), ShouldBeGreaterThan, 0)

		snap, ok := p.Snapshot()
		So(ok, ShouldBeTrue)
		So(snap.JobID, ShouldEqual, "new")
		p.Stop()
	})
}

// slowFirstChecker 第一次检查睡眠 60ms 后返回 processing，之后立即返回终态。
// 用于制造"旧一轮检查仍在途时重新 Watch 同一任务"的时序。
type slowFirstChecker struct {
	mu    sync.Mutex
	calls int
}

func (c *slowFirstChecker) CheckStatus(ctx context.Context, jobID string) (genmedia.Snapshot, error) {
	c.mu.Lock()
	c.calls++
	n := c.calls
	c.mu.Unlock()
	if n == 1 {
		time.Sleep(60 * time.Millisecond)
		return genmedia.Snapshot{JobID: jobID, Status: genmedia.StatusProcessing, Progress: 10}, nil
	}
	return genmedia.Snapshot{JobID: jobID, Status: genmedia.StatusCompleted, Progress: 100, Video: &genmedia.VideoRef{URL: "u"}}, nil
}

func TestPoller_RewatchSameJobDiscardsInFlightResult(t *testing.T) {
	Convey("re-watching the same job discards the superseded run's late result", t, func() {
		chk := &slowFirstChecker{}
		var mu sync.Mutex
		var seen []string
		p := New(chk, 10*time.Millisecond, WithOnUpdate(func(s genmedia.Snapshot) {
			mu.Lock()
			seen = append(seen, s.Status)
			mu.Unlock()
		}))
		p.Watch(context.Background(), "j1")
		time.Sleep(20 * time.Millisecond)
		// 旧一轮检查仍在途时重新观察同一个任务
		p.Watch(context.Background(), "j1")
		time.Sleep(100 * time.Millisecond)

		// 新一轮立刻拿到终态；旧一轮迟到的 processing 不得覆盖它
		snap, ok := p.Snapshot()
		So(ok, ShouldBeTrue)
		So(snap.Status, ShouldEqual, genmedia.StatusCompleted)
		So(p.Err(), ShouldBeNil)
		mu.Lock()
		defer mu.Unlock()
		So(seen, ShouldResemble, []string{"completed"})
	})
}

func TestPoller_ResetClearsState(t *testing.T) {
	Convey("reset returns the poller to idle", t, func() {
		chk := newScripted(completed("j5", "u5"))
		p := New(chk, 10*time.Millisecond)
		p.Watch(context.Background(), "j5")
		time.Sleep(40 * time.Millisecond)

		_, ok := p.Snapshot()
		So(ok, ShouldBeTrue)
		p.Reset()
		_, ok = p.Snapshot()
		So(ok, ShouldBeFalse)
		So(p.Err(), ShouldBeNil)
	})
}
