package scheduler

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/mengeric/genmedia-server-go/genmedia"
	"github.com/mengeric/genmedia-server-go/storage/memstore"
)

func TestSweeper(t *testing.T) {
	Convey("sweeper removes only expired terminal records", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		store := memstore.New()

		old := time.Now().Add(-time.Hour)
		// 过期终态：应被清理
		So(store.Put(ctx, &genmedia.JobRecord{
			ID: "expired", Mode: genmedia.ModeSimulated,
			Terminal: &genmedia.Result{VideoURL: "u"}, UpdatedAt: old,
		}), ShouldBeNil)
		// 新鲜终态：保留
		So(store.Put(ctx, &genmedia.JobRecord{
			ID: "fresh", Mode: genmedia.ModeSimulated,
			Terminal: &genmedia.Result{Err: "boom"}, UpdatedAt: time.Now(),
		}), ShouldBeNil)
		// 运行中：即便更新时间很老也永不触碰
		So(store.Put(ctx, &genmedia.JobRecord{
			ID: "running", Mode: genmedia.ModeDelegated, UpdatedAt: old,
		}), ShouldBeNil)

		sw := NewSweeper(store, 10*time.Minute, 1)
		sw.Start(ctx)
		time.Sleep(1200 * time.Millisecond)

		_, err := store.Get(ctx, "expired")
		So(err, ShouldEqual, genmedia.ErrJobNotFound)
		_, err = store.Get(ctx, "fresh")
		So(err, ShouldBeNil)
		_, err = store.Get(ctx, "running")
		So(err, ShouldBeNil)
	})
}
