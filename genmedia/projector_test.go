package genmedia

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestProject(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	d := 15 * time.Second

	Convey("simulated records project elapsed-time progress", t, func() {
		rec := &JobRecord{ID: "j1", Mode: ModeSimulated, CreatedAt: base}

		So(Project(rec, base, d).Progress, ShouldEqual, 0)
		So(Project(rec, base, d).Status, ShouldEqual, StatusProcessing)
		So(Project(rec, base.Add(3*time.Second), d).Progress, ShouldEqual, 20)
		So(Project(rec, base.Add(7500*time.Millisecond), d).Progress, ShouldEqual, 50)
		// 超时但尚未终态：进度封顶 100，状态仍为 processing
		So(Project(rec, base.Add(time.Minute), d).Progress, ShouldEqual, 100)

		// 进度随时间单调不减
		prev := -1
		for i := 0; i <= 20; i++ {
			p := Project(rec, base.Add(time.Duration(i)*time.Second), d).Progress
			So(p, ShouldBeGreaterThanOrEqualTo, prev)
			prev = p
		}
	})

	Convey("delegated records project the fixed placeholder", t, func() {
		rec := &JobRecord{ID: "j2", Mode: ModeDelegated, CreatedAt: base}
		snap := Project(rec, base.Add(time.Hour), d)
		So(snap.Status, ShouldEqual, StatusProcessing)
		So(snap.Progress, ShouldEqual, DelegatedPlaceholderProgress)
	})

	Convey("terminal results win over both paths", t, func() {
		ok := &JobRecord{ID: "j3", Mode: ModeSimulated, CreatedAt: base, Terminal: &Result{VideoURL: "u1"}}
		snap := Project(ok, base, d)
		So(snap.Status, ShouldEqual, StatusCompleted)
		So(snap.Progress, ShouldEqual, 100)
		So(snap.Video, ShouldNotBeNil)
		So(snap.Video.URL, ShouldEqual, "u1")

		bad := &JobRecord{ID: "j4", Mode: ModeDelegated, CreatedAt: base, Terminal: &Result{Err: "boom"}}
		snap = Project(bad, base, d)
		So(snap.Status, ShouldEqual, StatusFailed)
		So(snap.Error, ShouldEqual, "boom")
		So(snap.Video, ShouldBeNil)
	})

	Convey("projection never mutates its input", t, func() {
		rec := &JobRecord{ID: "j5", Mode: ModeSimulated, CreatedAt: base}
		_ = Project(rec, base.Add(time.Hour), d)
		So(rec.Terminal, ShouldBeNil)
		So(rec.CreatedAt, ShouldEqual, base)
	})
}
