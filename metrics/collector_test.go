package metrics

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCollectRuntimeMetric(t *testing.T) {
	Convey("collect metrics should not panic and be in range", t, func() {
		ctx := context.Background()
		m := CollectRuntimeMetric(ctx)
		So(m.CPUProcessors, ShouldBeGreaterThanOrEqualTo, 1)
		So(m.Score, ShouldBeGreaterThanOrEqualTo, 0)
		So(m.Score, ShouldBeLessThanOrEqualTo, 100)
	})
}
