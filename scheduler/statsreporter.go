package scheduler

import (
	"context"
	"time"

	"github.com/mengeric/genmedia-server-go/genmedia"
	"github.com/mengeric/genmedia-server-go/logging"
	"github.com/mengeric/genmedia-server-go/metrics"
)

// StatsReporter 周期性输出任务计数与进程健康评分。
type StatsReporter struct {
	store    genmedia.Storage
	interval time.Duration
}

// NewStatsReporter 构造。seconds 上报周期（秒）。
func NewStatsReporter(store genmedia.Storage, seconds int) *StatsReporter {
	return &StatsReporter{store: store, interval: time.Duration(seconds) * time.Second}
}

// Start 启动上报任务。
func (r *StatsReporter) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				recs, err := r.store.List(ctx)
				if err != nil {
					logging.L().Warn(ctx, "stats list failed", "err", err)
					continue
				}
				var active, completed, failed int
				for _, rec := range recs {
					switch {
					case rec.Terminal == nil:
						active++
					case rec.Terminal.Failed():
						failed++
					default:
						completed++
					}
				}
				m := metrics.CollectRuntimeMetric(ctx)
				logging.L().Info(ctx, "job stats",
					"active", active, "completed", completed, "failed", failed,
					"score", m.Score)
			}
		}
	}()
}
