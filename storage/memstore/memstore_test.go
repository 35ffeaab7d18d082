package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/mengeric/genmedia-server-go/genmedia"
)

func TestStore(t *testing.T) {
	ctx := context.Background()

	Convey("put/get copy semantics keep records isolated", t, func() {
		s := New()
		rec := &genmedia.JobRecord{ID: "j1", Mode: genmedia.ModeSimulated, CreatedAt: time.Now()}
		So(s.Put(ctx, rec), ShouldBeNil)

		got, err := s.Get(ctx, "j1")
		So(err, ShouldBeNil)
		got.Terminal = &genmedia.Result{VideoURL: "tamper"}

		// 修改返回值不影响存储内部状态
		again, err := s.Get(ctx, "j1")
		So(err, ShouldBeNil)
		So(again.Terminal, ShouldBeNil)
	})

	Convey("get of an unknown id returns ErrJobNotFound", t, func() {
		s := New()
		_, err := s.Get(ctx, "missing")
		So(errors.Is(err, genmedia.ErrJobNotFound), ShouldBeTrue)
	})

	Convey("set terminal is first-write-wins", t, func() {
		s := New()
		So(s.Put(ctx, &genmedia.JobRecord{ID: "j2", Mode: genmedia.ModeDelegated}), ShouldBeNil)

		first, err := s.SetTerminal(ctx, "j2", genmedia.Result{VideoURL: "u1"})
		So(err, ShouldBeNil)
		So(first.VideoURL, ShouldEqual, "u1")

		second, err := s.SetTerminal(ctx, "j2", genmedia.Result{Err: "late failure"})
		So(err, ShouldBeNil)
		So(second.VideoURL, ShouldEqual, "u1")
		So(second.Failed(), ShouldBeFalse)
	})

	Convey("delete removes records and tolerates unknown ids", t, func() {
		s := New()
		So(s.Put(ctx, &genmedia.JobRecord{ID: "j3"}), ShouldBeNil)
		So(s.Delete(ctx, "j3"), ShouldBeNil)
		So(s.Delete(ctx, "j3"), ShouldBeNil)
		_, err := s.Get(ctx, "j3")
		So(errors.Is(err, genmedia.ErrJobNotFound), ShouldBeTrue)

		recs, err := s.List(ctx)
		So(err, ShouldBeNil)
		So(len(recs), ShouldEqual, 0)
	})
}
