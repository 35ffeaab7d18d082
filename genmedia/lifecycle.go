package genmedia

import (
	"context"
	"sync"
	"time"
)

// lockFor 返回指定任务 ID 的互斥锁。
// 同一 ID 的两次状态检查即使并发到达也会被串行化，保证
// 单次检查至多一次上游轮询、终态至多写入一次。
func (e *Engine) lockFor(id string) *sync.Mutex {
	v, _ := e.locks.LoadOrStore(id, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// releaseLock 删除任务的锁条目，防止锁表随历史任务无限增长。
// 只在终态已写入或记录不存在时调用：此后串行化不再必要 ——
// 终态检查只读短路，终态写入本身由存储的先写保留兜底。
// 仍阻塞在同一把旧锁上的检查不受影响，照常依次通过。
func (e *Engine) releaseLock(id string) {
	e.locks.Delete(id)
}

// CheckStatus 执行一次状态检查并返回对外快照。
// 功能：按记录的模式推进生命周期 —— 模拟路径由耗时推导进度并在到期时
// 一次性写入终态；委托路径对上游至多发起一次轮询并把刷新后的句柄
// 折回记录。终态一旦写入，后续检查直接短路返回，不再触达上游。
// 异常：未知 ID 返回 ErrJobNotFound；上游调用失败返回 TransientCheckError，
// 存储状态保持不变，下一次轮询自然重试。
func (e *Engine) CheckStatus(ctx context.Context, id string) (Snapshot, error) {
	mu := e.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	rec, err := e.store.Get(ctx, id)
	if err != nil {
		e.releaseLock(id)
		return Snapshot{}, err
	}
	if rec.Terminal != nil {
		e.releaseLock(id)
		return Project(rec, time.Now(), e.opt.SimulatedDuration), nil
	}

	switch rec.Mode {
	case ModeSimulated:
		if err := e.advanceSimulated(ctx, rec); err != nil {
			return Snapshot{}, err
		}
	case ModeDelegated:
		if err := e.advanceDelegated(ctx, rec); err != nil {
			return Snapshot{}, err
		}
	}
	if rec.Terminal != nil {
		e.releaseLock(id)
	}
	return Project(rec, time.Now(), e.opt.SimulatedDuration), nil
}

// advanceSimulated 模拟路径推进：到期则写入固定成功产物。
// 到期前不做任何写操作，进度完全由投影即时计算。
func (e *Engine) advanceSimulated(ctx context.Context, rec *JobRecord) error {
	if time.Since(rec.CreatedAt) < e.opt.SimulatedDuration {
		return nil
	}
	res, err := e.store.SetTerminal(ctx, rec.ID, Result{VideoURL: SampleVideoURL})
	if err != nil {
		return err
	}
	rec.Terminal = &res
	return nil
}

// advanceDelegated 委托路径推进：轮询一次上游并折回结果。
func (e *Engine) advanceDelegated(ctx context.Context, rec *JobRecord) error {
	op, err := e.api.PollVideo(ctx, rec.ExternalHandle)
	if err != nil {
		return &TransientCheckError{Op: "poll", Err: err}
	}

	// 原位刷新句柄，后续轮询携带最新的操作对象
	rec.ExternalHandle = op.Raw
	rec.UpdatedAt = time.Now()
	if err := e.store.Put(ctx, rec); err != nil {
		return err
	}
	if !op.Done {
		return nil
	}

	var res Result
	if uri, ok := op.FirstVideoURI(); ok {
		res = Result{VideoURL: uri}
	} else {
		// 上游声称完成却拿不到产物：永久失败，不再重试
		res = Result{Err: "video generation completed, but the result URL was missing"}
	}
	eff, err := e.store.SetTerminal(ctx, rec.ID, res)
	if err != nil {
		return err
	}
	rec.Terminal = &eff
	return nil
}
