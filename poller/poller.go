package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mengeric/genmedia-server-go/genmedia"
	"github.com/mengeric/genmedia-server-go/logging"
)

// StatusChecker 状态查询操作。*genmedia.Engine 直接满足该接口；
// 远端部署时可用任意 HTTP 客户端适配，只要把 404 映射为
// genmedia.ErrJobNotFound、瞬时失败映射为 genmedia.TransientCheckError。
type StatusChecker interface {
	CheckStatus(ctx context.Context, jobID string) (genmedia.Snapshot, error)
}

// Poller 单任务轮询器：同一时刻只关注一个任务 ID。
// 状态机：Idle（无任务）-> Active（立即检查一次，此后按固定周期检查）
// -> Stopped（终态快照或不可恢复错误）。
// 单飞约束：下一次检查只在上一次检查返回之后才会被安排。
// 每次 Watch 产生一个新代次（gen），Watch/Stop/Reset 之后迟到的
// 旧代次结果一律丢弃，即便重新观察的是同一个任务 ID。
type Poller struct {
	checker  StatusChecker
	interval time.Duration
	onUpdate func(genmedia.Snapshot) // 每次成功检查后的观察回调，可为空

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	snap   *genmedia.Snapshot
	err    error
}

// PollerOption 轮询器可选项。
type PollerOption func(*Poller)

// WithOnUpdate 注册快照观察回调（在轮询协程内同步调用）。
func WithOnUpdate(fn func(genmedia.Snapshot)) PollerOption {
	return func(p *Poller) { p.onUpdate = fn }
}

// New 创建轮询器。interval<=0 时使用默认 3 秒。
func New(checker StatusChecker, interval time.Duration, opts ...PollerOption) *Poller {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	p := &Poller{checker: checker, interval: interval}
	for _, fn := range opts {
		fn(p)
	}
	return p
}

// Watch 开始轮询指定任务。
// 切换或重新观察时先取消上一轮的定时检查并递增代次，
// 任一时刻至多一个定时器存活，旧一轮仍在途的检查结果作废。
func (p *Poller) Watch(ctx context.Context, jobID string) {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.gen++
	gen := p.gen
	p.snap = nil
	p.err = nil
	p.mu.Unlock()

	go p.run(runCtx, gen, jobID)
}

// run 轮询主循环：先立即检查一次，之后每次都在上一次检查
// 处理完毕后再武装下一个定时器。
func (p *Poller) run(ctx context.Context, gen uint64, jobID string) {
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		if stop := p.checkOnce(ctx, gen, jobID); stop {
			return
		}
		timer.Reset(p.interval)
	}
}

// checkOnce 执行一次状态检查并更新本地观测状态。
// 返回 true 表示轮询应当终止。
func (p *Poller) checkOnce(ctx context.Context, gen uint64, jobID string) bool {
	snap, err := p.checker.CheckStatus(ctx, jobID)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return true
		}
		var tce *genmedia.TransientCheckError
		if errors.As(err, &tce) {
			// 瞬时失败：不更新快照，下个周期重试
			logging.L().Warnf(ctx, "status check failed, will retry: jobId=%s err=%v", jobID, err)
			return false
		}
		// 未知任务或其他不可恢复错误：记录并终止
		p.mu.Lock()
		if p.gen == gen {
			p.err = err
		}
		p.mu.Unlock()
		return true
	}

	p.mu.Lock()
	stale := p.gen != gen
	if !stale {
		cp := snap
		p.snap = &cp
	}
	p.mu.Unlock()
	if stale {
		// 本轮已被新的 Watch/Stop/Reset 取代，丢弃迟到的结果
		return true
	}
	if p.onUpdate != nil {
		p.onUpdate(snap)
	}
	return snap.TerminalStatus()
}

// Snapshot 返回最近一次成功检查的快照。
func (p *Poller) Snapshot() (genmedia.Snapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.snap == nil {
		return genmedia.Snapshot{}, false
	}
	return *p.snap, true
}

// Err 返回导致轮询终止的错误（若有）。
func (p *Poller) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Stop 停止当前轮询，无条件释放定时器；进行中的检查允许完成，结果被丢弃。
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.gen++
}

// Reset 停止轮询并清空本地观测状态，回到 Idle。
func (p *Poller) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.gen++
	p.snap = nil
	p.err = nil
}
