package scheduler

import (
	"context"
	"time"

	"github.com/mengeric/genmedia-server-go/genmedia"
	"github.com/mengeric/genmedia-server-go/logging"
)

// Sweeper 周期性清理超过保留时长的终态任务记录。
// 属运维可选项：不启动则记录在进程生命周期内全量保留。
// 约束：只删除终态记录，processing 中的任务永不触碰。
type Sweeper struct {
	store     genmedia.Storage
	retention time.Duration
	interval  time.Duration
}

// NewSweeper 构造。
// 参数：retention 终态记录保留时长；seconds 清理周期（秒）。
func NewSweeper(store genmedia.Storage, retention time.Duration, seconds int) *Sweeper {
	return &Sweeper{store: store, retention: retention, interval: time.Duration(seconds) * time.Second}
}

// Start 启动清理任务。
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweepOnce(ctx)
			}
		}
	}()
}

// sweepOnce 执行一轮清理。
func (s *Sweeper) sweepOnce(ctx context.Context) {
	recs, err := s.store.List(ctx)
	if err != nil {
		logging.L().Warnf(ctx, "sweep list failed: %v", err)
		return
	}
	cutoff := time.Now().Add(-s.retention)
	removed := 0
	for _, r := range recs {
		if r.Terminal == nil || r.UpdatedAt.After(cutoff) {
			continue
		}
		if err := s.store.Delete(ctx, r.ID); err != nil {
			logging.L().Warnf(ctx, "sweep delete failed: jobId=%s err=%v", r.ID, err)
			continue
		}
		removed++
	}
	if removed > 0 {
		logging.L().Info(ctx, "swept terminal jobs", "removed", removed)
	}
}
